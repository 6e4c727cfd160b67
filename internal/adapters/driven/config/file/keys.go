package file

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/graphscope/internal/core/domain"
)

// fileConfig is the on-disk shape of domain.AppConfig. Durations are
// written as Go duration strings such as "30s".
type fileConfig struct {
	AppID              string   `toml:"app_id"`
	GraphBase          string   `toml:"graph_base"`
	GraphVersion       string   `toml:"graph_version"`
	AuthBase           string   `toml:"auth_base"`
	Scopes             []string `toml:"scopes"`
	DefaultFields      string   `toml:"default_fields"`
	DefaultPictureType string   `toml:"default_picture_type"`
	RedirectURI        string   `toml:"redirect_uri"`
	CallbackPort       int      `toml:"callback_port"`
	OpenBrowser        bool     `toml:"open_browser"`
	RequestTimeout     string   `toml:"request_timeout"`
	LoginTimeout       string   `toml:"login_timeout"`
	RequestsPerSecond  float64  `toml:"requests_per_second"`
}

func fromAppConfig(c domain.AppConfig) fileConfig {
	return fileConfig{
		AppID:              c.AppID,
		GraphBase:          c.GraphBase,
		GraphVersion:       c.GraphVersion,
		AuthBase:           c.AuthBase,
		Scopes:             slices.Clone(c.Scopes),
		DefaultFields:      c.DefaultFields,
		DefaultPictureType: c.DefaultPictureType.String(),
		RedirectURI:        c.RedirectURI,
		CallbackPort:       c.CallbackPort,
		OpenBrowser:        c.OpenBrowser,
		RequestTimeout:     c.RequestTimeout.String(),
		LoginTimeout:       c.LoginTimeout.String(),
		RequestsPerSecond:  c.RequestsPerSecond,
	}
}

func (f fileConfig) toAppConfig() (domain.AppConfig, error) {
	requestTimeout, err := time.ParseDuration(f.RequestTimeout)
	if err != nil {
		return domain.AppConfig{}, fmt.Errorf("request_timeout: %w", err)
	}
	loginTimeout, err := time.ParseDuration(f.LoginTimeout)
	if err != nil {
		return domain.AppConfig{}, fmt.Errorf("login_timeout: %w", err)
	}

	return domain.AppConfig{
		AppID:              f.AppID,
		GraphBase:          f.GraphBase,
		GraphVersion:       f.GraphVersion,
		AuthBase:           f.AuthBase,
		Scopes:             slices.Clone(f.Scopes),
		DefaultFields:      f.DefaultFields,
		DefaultPictureType: domain.PictureType(f.DefaultPictureType),
		RedirectURI:        f.RedirectURI,
		CallbackPort:       f.CallbackPort,
		OpenBrowser:        f.OpenBrowser,
		RequestTimeout:     requestTimeout,
		LoginTimeout:       loginTimeout,
		RequestsPerSecond:  f.RequestsPerSecond,
	}, nil
}

// keyKind is how a `config set` value is parsed.
type keyKind int

const (
	kindString keyKind = iota
	kindList
	kindInt
	kindBool
	kindFloat
	kindDuration
)

// settableKeys lists every key accepted by Set.
var settableKeys = map[string]keyKind{
	"app_id":               kindString,
	"graph_base":           kindString,
	"graph_version":        kindString,
	"auth_base":            kindString,
	"scopes":               kindList,
	"default_fields":       kindString,
	"default_picture_type": kindString,
	"redirect_uri":         kindString,
	"callback_port":        kindInt,
	"open_browser":         kindBool,
	"request_timeout":      kindDuration,
	"login_timeout":        kindDuration,
	"requests_per_second":  kindFloat,
}

// Keys returns the settable configuration keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(settableKeys))
	for k := range settableKeys {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// parseValue converts a command-line value for key into its TOML type.
func parseValue(key, raw string) (any, error) {
	kind, ok := settableKeys[key]
	if !ok {
		return nil, fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
	}

	raw = strings.TrimSpace(raw)
	switch kind {
	case kindList:
		return domain.NormalizeFields(raw), nil
	case kindInt:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: expected an integer: %w", key, err)
		}
		return int64(v), nil
	case kindBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: expected true or false: %w", key, err)
		}
		return v, nil
	case kindFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: expected a number: %w", key, err)
		}
		return v, nil
	case kindDuration:
		if _, err := time.ParseDuration(raw); err != nil {
			return nil, fmt.Errorf("%s: expected a duration such as 30s: %w", key, err)
		}
		return raw, nil
	default:
		return raw, nil
	}
}
