// Package auth acquires the bearer token used for completion requests.
//
// The token is fetched once per process start with a client-credentials grant
// and then handed to the completion client as a plain string.
package auth

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/mamoruimade/basicChatFeature/internal/config"
)

// FetchToken exchanges the configured client credentials for an access token.
// If httpClient is nil, http.DefaultClient is used.
func FetchToken(ctx context.Context, cfg config.Config, httpClient *http.Client) (string, error) {
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       []string{cfg.Scope()},
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	if httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	}

	tok, err := cc.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("requesting access token: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token response has no access_token")
	}
	return tok.AccessToken, nil
}
