package auth

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

// SpotifyEndpoint is the oauth2.Endpoint for Spotify Accounts.
var SpotifyEndpoint = oauth2.Endpoint{
	AuthURL:  SpotifyAuthURL,
	TokenURL: SpotifyTokenURL,
}

// NewOAuth2Config builds the oauth2.Config for a PKCE authorization-code
// flow against Spotify. Spotify's PKCE flow is a public client (no
// client secret); the code_verifier/code_challenge exchange happens via
// oauth2.SetAuthURLParam at call sites (BuildAuthURL, ExchangeCode).
func NewOAuth2Config(clientID, redirectURI string, scopes []string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:    clientID,
		Endpoint:    SpotifyEndpoint,
		RedirectURL: redirectURI,
		Scopes:      scopes,
	}
}

// ExchangeCode exchanges an authorization code for a token using PKCE,
// via golang.org/x/oauth2 rather than a hand-rolled form-encoded POST.
func ExchangeCode(ctx context.Context, cfg *oauth2.Config, code, codeVerifier string) (*oauth2.Token, error) {
	return cfg.Exchange(ctx, code, oauth2.SetAuthURLParam("code_verifier", codeVerifier))
}

// RefreshAccessToken uses a refresh token to mint a new access token via
// oauth2.Config.TokenSource, bypassing its internal caching by handing
// it a token that's already expired.
func RefreshAccessToken(ctx context.Context, cfg *oauth2.Config, refreshToken string) (*oauth2.Token, error) {
	stale := &oauth2.Token{RefreshToken: refreshToken, Expiry: time.Now().Add(-time.Hour)}
	return cfg.TokenSource(ctx, stale).Token()
}

// IsExpired returns true if t has expired or will expire within the
// 60-second refresh buffer.
func IsExpired(t *oauth2.Token) bool {
	return t == nil || time.Now().Add(60*time.Second).After(t.Expiry)
}
