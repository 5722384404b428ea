package completion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamoruimade/basicChatFeature/internal/config"
	"github.com/mamoruimade/basicChatFeature/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewWithHTTPClient(srv.URL+"/deployments/d/chat/completions?api-version=v", "tok", "sub", srv.Client(), nil)
}

func TestSendSuccess(t *testing.T) {
	var got request
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "v", r.URL.Query().Get("api-version"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "tok", r.Header.Get("api-key"))
		assert.Equal(t, "sub", r.Header.Get("Ocp-Apim-Subscription-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hi there"}}]}`))
	})

	reply, err := client.Send(context.Background(), "be brief", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", reply)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, model.Turn{Role: model.RoleSystem, Content: "be brief"}, got.Messages[0])
	assert.Equal(t, model.Turn{Role: model.RoleUser, Content: "hello"}, got.Messages[1])
}

func TestSendFailureKinds(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		kind    Kind
		rawBody bool
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`, KindHTTPStatus, true},
		{"unauthorized", http.StatusUnauthorized, `denied`, KindHTTPStatus, true},
		{"not json", http.StatusOK, `<html>`, KindMalformedResponse, true},
		{"missing choices", http.StatusOK, `{"id":"x"}`, KindUnexpectedShape, true},
		{"empty choices", http.StatusOK, `{"choices":[]}`, KindUnexpectedShape, true},
		{"missing content", http.StatusOK, `{"choices":[{"message":{"role":"assistant"}}]}`, KindUnexpectedShape, true},
		{"missing message", http.StatusOK, `{"choices":[{"index":0}]}`, KindUnexpectedShape, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})

			_, err := client.Send(context.Background(), "s", "u")
			var f *Failure
			require.True(t, errors.As(err, &f), "expected *Failure, got %T", err)
			assert.Equal(t, tc.kind, f.Kind)
			if tc.rawBody {
				assert.Equal(t, tc.body, f.RawBody)
			}
			if tc.kind == KindHTTPStatus {
				assert.Equal(t, tc.status, f.StatusCode)
			}
		})
	}
}

func TestSendTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewWithHTTPClient(url, "tok", "", nil, nil)
	_, err := client.Send(context.Background(), "s", "u")

	var f *Failure
	require.True(t, errors.As(err, &f))
	assert.Equal(t, KindTransport, f.Kind)
	assert.Empty(t, f.RawBody)
}

func TestSendOmitsEmptySubscriptionKey(t *testing.T) {
	client := NewWithHTTPClient("", "tok", "", nil, nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["Ocp-Apim-Subscription-Key"]
		assert.False(t, present)
		w.Write([]byte(`{"choices":[{"message":{"content":""}}]}`))
	}))
	defer srv.Close()
	client.url = srv.URL

	reply, err := client.Send(context.Background(), "s", "u")
	require.NoError(t, err)
	assert.Equal(t, "", reply)
}

func TestNewUsesConfig(t *testing.T) {
	cfg := config.Config{
		APIBase:        "https://example.test",
		Deployment:     "dep",
		APIVersion:     "2024-07-01-preview",
		RequestTimeout: 5 * time.Second,
	}
	client := New(cfg, "tok", nil)
	assert.Equal(t, "https://example.test/deployments/dep/chat/completions?api-version=2024-07-01-preview", client.url)
	assert.Equal(t, cfg.RequestTimeout, client.client.Timeout)
}

func TestFailureError(t *testing.T) {
	f := &Failure{Kind: KindHTTPStatus, Detail: "500 Internal Server Error", StatusCode: 500}
	assert.Equal(t, "completion http_status (500): 500 Internal Server Error", f.Error())
	f = &Failure{Kind: KindTransport, Detail: "dial tcp: refused"}
	assert.Equal(t, "completion transport: dial tcp: refused", f.Error())
}
