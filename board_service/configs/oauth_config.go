package configs

import (
	"golang.org/x/oauth2"
)

// настройки входа через внешнего OAuth провайдера (authorization code flow)
type OAuthConfig struct {
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"` // переопределяется OAUTH_CLIENT_SECRET
	AuthURL      string   `yaml:"auth_url"`
	TokenURL     string   `yaml:"token_url"`
	UserInfoURL  string   `yaml:"userinfo_url"`
	RedirectURL  string   `yaml:"redirect_url"`
	Scopes       []string `yaml:"scopes"`
	StateCookie  string   `yaml:"state_cookie"` // имя куки со state
	AfterLogin   string   `yaml:"after_login"`  // куда вернуть пользователя после входа
}

// конфиг OAuth по умолчанию (Google endpoints)
func UseDefaultOAuthConfig() *OAuthConfig {
	return &OAuthConfig{
		AuthURL:     "https://accounts.google.com/o/oauth2/auth",
		TokenURL:    "https://oauth2.googleapis.com/token",
		UserInfoURL: "https://openidconnect.googleapis.com/v1/userinfo",
		RedirectURL: "http://localhost:8080/api/auth/callback",
		Scopes:      []string{"openid", "email", "profile"},
		StateCookie: "oauth_state",
		AfterLogin:  "/",
	}
}

// OAuth2 - конфиг клиента golang.org/x/oauth2
func (c *OAuthConfig) OAuth2() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  c.AuthURL,
			TokenURL: c.TokenURL,
		},
		RedirectURL: c.RedirectURL,
		Scopes:      c.Scopes,
	}
}

// Enabled - вход включён, только если задан client id
func (c *OAuthConfig) Enabled() bool {
	return c.ClientID != ""
}
