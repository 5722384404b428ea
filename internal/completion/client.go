// Package completion sends single system+user exchanges to a chat
// completions deployment.
package completion

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/mamoruimade/basicChatFeature/internal/config"
	"github.com/mamoruimade/basicChatFeature/model"
)

// Kind classifies a failed completion exchange.
type Kind string

const (
	KindTransport         Kind = "transport"
	KindHTTPStatus        Kind = "http_status"
	KindMalformedResponse Kind = "malformed_response"
	KindUnexpectedShape   Kind = "unexpected_shape"
)

// Failure is the only error type returned by Client.Send.
type Failure struct {
	Kind       Kind
	Detail     string
	StatusCode int
	// RawBody is the response body, when one was read.
	RawBody string
	Err     error
}

func (f *Failure) Error() string {
	if f.StatusCode != 0 {
		return fmt.Sprintf("completion %s (%d): %s", f.Kind, f.StatusCode, f.Detail)
	}
	return fmt.Sprintf("completion %s: %s", f.Kind, f.Detail)
}

func (f *Failure) Unwrap() error { return f.Err }

// Client talks to one deployment with a token acquired at startup.
type Client struct {
	url             string
	token           string
	subscriptionKey string
	client          *http.Client
	logger          *zap.Logger
}

// New creates a Client for the deployment described by cfg.
func New(cfg config.Config, token string, logger *zap.Logger) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return NewWithHTTPClient(cfg.CompletionURL(), token, cfg.SubscriptionKey,
		&http.Client{Transport: transport, Timeout: cfg.RequestTimeout}, logger)
}

// NewWithHTTPClient creates a Client posting to url with the given HTTP client.
func NewWithHTTPClient(url, token, subscriptionKey string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		url:             url,
		token:           token,
		subscriptionKey: subscriptionKey,
		client:          httpClient,
		logger:          logger,
	}
}

type request struct {
	Messages []model.Turn `json:"messages"`
}

type response struct {
	Choices *[]struct {
		Message *struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Send issues one request carrying exactly one system and one user message
// and returns the assistant text. Errors are always *Failure.
func (c *Client) Send(ctx context.Context, system, user string) (string, error) {
	jsonBody, err := json.Marshal(request{Messages: []model.Turn{
		{Role: model.RoleSystem, Content: system},
		{Role: model.RoleUser, Content: user},
	}})
	if err != nil {
		return "", &Failure{Kind: KindTransport, Detail: "encoding request: " + err.Error(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", &Failure{Kind: KindTransport, Detail: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("api-key", c.token)
	if c.subscriptionKey != "" {
		req.Header.Set("Ocp-Apim-Subscription-Key", c.subscriptionKey)
	}

	c.logger.Debug("sending completion request",
		zap.Int("system_len", len(system)), zap.Int("user_len", len(user)))

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &Failure{Kind: KindTransport, Detail: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Failure{Kind: KindTransport, Detail: "reading response: " + err.Error(), StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Failure{
			Kind:       KindHTTPStatus,
			Detail:     resp.Status,
			StatusCode: resp.StatusCode,
			RawBody:    string(respBody),
		}
	}

	var result response
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", &Failure{Kind: KindMalformedResponse, Detail: "parsing response: " + err.Error(), RawBody: string(respBody), Err: err}
	}

	switch {
	case result.Choices == nil:
		return "", &Failure{Kind: KindUnexpectedShape, Detail: "missing choices", RawBody: string(respBody)}
	case len(*result.Choices) == 0:
		return "", &Failure{Kind: KindUnexpectedShape, Detail: "no choices in response", RawBody: string(respBody)}
	}
	first := (*result.Choices)[0]
	if first.Message == nil || first.Message.Content == nil {
		return "", &Failure{Kind: KindUnexpectedShape, Detail: "missing choices[0].message.content", RawBody: string(respBody)}
	}

	c.logger.Debug("completion received", zap.Int("reply_len", len(*first.Message.Content)))
	return *first.Message.Content, nil
}
