package domain

import "time"

// Provider defaults.
const (
	DefaultGraphBase    = "https://graph.facebook.com"
	DefaultAuthBase     = "https://www.facebook.com"
	DefaultGraphVersion = "v24.0"
	DefaultFields       = "id,name"
)

// AppConfig holds everything the flow and the API client need to talk to the provider.
type AppConfig struct {
	// AppID is the provider application (client) identifier. Login requires it.
	AppID string `toml:"app_id" env:"APP_ID"`

	// GraphBase is the API host, e.g. https://graph.facebook.com.
	GraphBase string `toml:"graph_base" env:"GRAPH_BASE" validate:"required,url"`

	// GraphVersion is the versioned path segment, e.g. v24.0.
	GraphVersion string `toml:"graph_version" env:"GRAPH_VERSION" validate:"required,startswith=v"`

	// AuthBase is the host serving the authorization dialog.
	AuthBase string `toml:"auth_base" env:"AUTH_BASE" validate:"required,url"`

	// Scopes are the permissions requested at login.
	Scopes []string `toml:"scopes" env:"SCOPES" envSeparator:"," validate:"dive,required"`

	// DefaultFields pre-fills the fields input.
	DefaultFields string `toml:"default_fields" env:"DEFAULT_FIELDS"`

	// DefaultPictureType pre-fills the picture size.
	DefaultPictureType PictureType `toml:"default_picture_type" env:"PICTURE_TYPE" validate:"oneof=small normal large square"`

	// RedirectURI replaces the callback location when set, e.g. an HTTPS tunnel.
	// It must match a value registered with the provider exactly.
	RedirectURI string `toml:"redirect_uri" env:"REDIRECT_URI" validate:"omitempty,url"`

	// CallbackPort is the local relay port; 0 picks a free one.
	CallbackPort int `toml:"callback_port" env:"CALLBACK_PORT" validate:"gte=0,lte=65535"`

	// OpenBrowser launches the system browser for the authorization dialog.
	OpenBrowser bool `toml:"open_browser" env:"OPEN_BROWSER"`

	// RequestTimeout bounds each API request.
	RequestTimeout time.Duration `toml:"request_timeout" env:"REQUEST_TIMEOUT" validate:"gt=0"`

	// LoginTimeout bounds the wait for the redirect to come back.
	LoginTimeout time.Duration `toml:"login_timeout" env:"LOGIN_TIMEOUT" validate:"gt=0"`

	// RequestsPerSecond throttles API calls; 0 disables throttling.
	RequestsPerSecond float64 `toml:"requests_per_second" env:"REQUESTS_PER_SECOND" validate:"gte=0"`
}

// DefaultAppConfig returns the configuration used when nothing is set.
// Only public_profile is requested: apps in development mode are usually
// refused the email scope.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		GraphBase:          DefaultGraphBase,
		GraphVersion:       DefaultGraphVersion,
		AuthBase:           DefaultAuthBase,
		Scopes:             []string{"public_profile"},
		DefaultFields:      DefaultFields,
		DefaultPictureType: PictureLarge,
		CallbackPort:       8765,
		OpenBrowser:        true,
		RequestTimeout:     30 * time.Second,
		LoginTimeout:       5 * time.Minute,
		RequestsPerSecond:  5,
	}
}

// HasScope returns true if scope is requested at login.
func (c AppConfig) HasScope(scope string) bool {
	return ContainsField(c.Scopes, scope)
}
