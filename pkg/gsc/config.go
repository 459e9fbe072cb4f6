package gsc

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Scopes requested during authorization.
var Scopes = []string{
	"https://www.googleapis.com/auth/webmasters",
	"https://www.googleapis.com/auth/webmasters.readonly",
}

// Config holds the OAuth client credentials of the site.
type Config struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

// Configured reports whether both client credentials are set.
func (c Config) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// OAuth2 returns the oauth2 configuration for Google's endpoint.
func (c Config) OAuth2() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURL,
		Endpoint:     google.Endpoint,
		Scopes:       Scopes,
	}
}
