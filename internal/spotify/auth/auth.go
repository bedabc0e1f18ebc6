package auth

import "golang.org/x/oauth2"

const (
	// SpotifyAuthURL is the Spotify authorization endpoint.
	SpotifyAuthURL = "https://accounts.spotify.com/authorize"

	// SpotifyTokenURL is the Spotify token endpoint.
	SpotifyTokenURL = "https://accounts.spotify.com/api/token"

	// DefaultRedirectURI is the default callback URI for the local server.
	DefaultRedirectURI = "http://127.0.0.1:8888/callback"
)

// DefaultScopes are the Spotify scopes spotatui requests.
var DefaultScopes = []string{
	"user-read-playback-state",
	"user-modify-playback-state",
	"user-read-currently-playing",
	"user-read-private",
	"user-read-email",
	"user-read-recently-played",
	"user-top-read",
	"user-library-read",
	"user-library-modify",
	"playlist-read-private",
	"playlist-read-collaborative",
	"user-follow-read",
	"user-follow-modify",
	"streaming",
}

// Config wraps an oauth2.Config with spotatui's default redirect/scopes.
type Config struct {
	*oauth2.Config
}

// NewConfig creates a new OAuth configuration with Spotify defaults.
func NewConfig(clientID string) *Config {
	return &Config{NewOAuth2Config(clientID, DefaultRedirectURI, DefaultScopes)}
}

// AuthURLParams are the client-specific inputs to BuildAuthURL.
type AuthURLParams struct {
	ClientID    string
	RedirectURI string
	Scopes      []string
}

// BuildAuthURL constructs the Spotify authorization URL for a PKCE
// authorization-code flow from explicit params, sending pkce.Challenge as
// the S256 code challenge. The scope parameter is omitted when
// params.Scopes is empty.
func BuildAuthURL(params AuthURLParams, pkce *PKCE) string {
	cfg := NewOAuth2Config(params.ClientID, params.RedirectURI, params.Scopes)
	return cfg.AuthCodeURL(pkce.State,
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
		oauth2.SetAuthURLParam("code_challenge", pkce.Challenge))
}

// BuildAuthURL constructs the Spotify authorization URL for a PKCE
// authorization-code flow, via oauth2.Config.AuthCodeURL.
func (c *Config) BuildAuthURL(pkce *PKCE) string {
	return c.AuthCodeURL(pkce.State, pkce.ChallengeOption())
}
