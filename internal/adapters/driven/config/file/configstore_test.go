package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/graphscope/internal/core/domain"
)

func newTestStore(t *testing.T, environ map[string]string) (*ConfigStore, string) {
	t.Helper()
	dir := t.TempDir()
	if environ == nil {
		environ = map[string]string{}
	}
	store, err := NewConfigStore(dir, WithEnvironment(environ))
	require.NoError(t, err)
	return store, dir
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0600))
}

func TestNewConfigStore_Success(t *testing.T) {
	store, dir := newTestStore(t, nil)

	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	assert.Equal(t, domain.DefaultAppConfig(), store.Config())
}

func TestNewConfigStore_LoadsFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
app_id = "1234"
scopes = ["public_profile", "email"]
default_picture_type = "square"
request_timeout = "5s"
callback_port = 9000
`)

	store, err := NewConfigStore(dir, WithEnvironment(map[string]string{}))
	require.NoError(t, err)

	cfg := store.Config()
	assert.Equal(t, "1234", cfg.AppID)
	assert.Equal(t, []string{"public_profile", "email"}, cfg.Scopes)
	assert.Equal(t, domain.PictureSquare, cfg.DefaultPictureType)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 9000, cfg.CallbackPort)
	assert.Equal(t, domain.DefaultGraphBase, cfg.GraphBase, "unset keys keep defaults")
}

func TestNewConfigStore_EnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `app_id = "from-file"`)

	store, err := NewConfigStore(dir, WithEnvironment(map[string]string{
		"GRAPHSCOPE_APP_ID":          "from-env",
		"GRAPHSCOPE_SCOPES":          "public_profile,email",
		"GRAPHSCOPE_REQUEST_TIMEOUT": "2s",
		"GRAPHSCOPE_OPEN_BROWSER":    "false",
		"APP_ID":                     "unprefixed",
	}))
	require.NoError(t, err)

	cfg := store.Config()
	assert.Equal(t, "from-env", cfg.AppID)
	assert.Equal(t, []string{"public_profile", "email"}, cfg.Scopes)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.OpenBrowser)
}

func TestNewConfigStore_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "bad toml", content: `app_id = `, wantErr: "parse"},
		{name: "unknown key", content: `colour = "blue"`, wantErr: "unknown keys"},
		{name: "bad picture", content: `default_picture_type = "huge"`, wantErr: "default_picture_type"},
		{name: "bad version", content: `graph_version = "24"`, wantErr: "graph_version"},
		{name: "bad duration", content: `login_timeout = "soon"`, wantErr: "login_timeout"},
		{name: "bad url", content: `graph_base = "not a url"`, wantErr: "graph_base"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, err := NewConfigStore(dir, WithEnvironment(map[string]string{}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigStore_Set(t *testing.T) {
	store, dir := newTestStore(t, nil)

	require.NoError(t, store.Set("app_id", "1234"))
	require.NoError(t, store.Set("scopes", "public_profile, email"))
	require.NoError(t, store.Set("callback_port", "9100"))
	require.NoError(t, store.Set("open_browser", "false"))
	require.NoError(t, store.Set("request_timeout", "10s"))
	require.NoError(t, store.Set("requests_per_second", "2.5"))

	cfg := store.Config()
	assert.Equal(t, "1234", cfg.AppID)
	assert.Equal(t, []string{"public_profile", "email"}, cfg.Scopes)
	assert.Equal(t, 9100, cfg.CallbackPort)
	assert.False(t, cfg.OpenBrowser)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.InDelta(t, 2.5, cfg.RequestsPerSecond, 0.0001)

	val, ok := store.Get("app_id")
	assert.True(t, ok)
	assert.Equal(t, "1234", val)

	// Persisted: a fresh store sees the same values
	reopened, err := NewConfigStore(dir, WithEnvironment(map[string]string{}))
	require.NoError(t, err)
	assert.Equal(t, cfg, reopened.Config())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Set_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown key", key: "nope", value: "x"},
		{name: "bad int", key: "callback_port", value: "abc"},
		{name: "out of range port", key: "callback_port", value: "70000"},
		{name: "bad bool", key: "open_browser", value: "maybe"},
		{name: "bad duration", key: "request_timeout", value: "forever"},
		{name: "zero duration", key: "request_timeout", value: "0s"},
		{name: "bad picture", key: "default_picture_type", value: "huge"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := newTestStore(t, nil)
			before := store.Config()

			err := store.Set(tt.key, tt.value)
			require.Error(t, err)
			assert.Equal(t, before, store.Config())

			_, statErr := os.Stat(store.Path())
			assert.True(t, os.IsNotExist(statErr), "nothing should be written")
		})
	}
}

func TestConfigStore_Load_KeepsPreviousOnError(t *testing.T) {
	store, dir := newTestStore(t, nil)
	require.NoError(t, store.Set("app_id", "1234"))

	writeConfig(t, dir, `default_picture_type = "huge"`)

	require.Error(t, store.Load())
	assert.Equal(t, "1234", store.Config().AppID)
}

func TestConfigStore_Marshal(t *testing.T) {
	store, _ := newTestStore(t, nil)
	require.NoError(t, store.Set("app_id", "1234"))

	out, err := store.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(out), "app_id = '1234'")
	assert.Contains(t, string(out), "request_timeout = '30s'")
}

func TestConfigStore_ConfigIsCopy(t *testing.T) {
	store, _ := newTestStore(t, nil)

	cfg := store.Config()
	cfg.Scopes[0] = "mutated"

	assert.Equal(t, "public_profile", store.Config().Scopes[0])
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Contains(t, keys, "app_id")
	assert.Contains(t, keys, "scopes")
	assert.IsIncreasing(t, keys)
}

func TestConfigStore_HandleEvent(t *testing.T) {
	store, dir := newTestStore(t, nil)

	tests := []struct {
		name string
		path string
		op   fsnotify.Op
		want bool
	}{
		{name: "write", path: store.Path(), op: fsnotify.Write, want: true},
		{name: "create", path: store.Path(), op: fsnotify.Create, want: true},
		{name: "remove", path: store.Path(), op: fsnotify.Remove, want: true},
		{name: "rename", path: store.Path(), op: fsnotify.Rename, want: true},
		{name: "chmod", path: store.Path(), op: fsnotify.Chmod, want: false},
		{name: "other file", path: filepath.Join(dir, "other.toml"), op: fsnotify.Write, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, store.handleEvent(fsnotify.Event{Name: tt.path, Op: tt.op}))
		})
	}
}

func TestConfigStore_Watch(t *testing.T) {
	store, dir := newTestStore(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads, err := store.Watch(ctx)
	require.NoError(t, err)

	writeConfig(t, dir, `app_id = "watched"`)

	require.Eventually(t, func() bool {
		select {
		case r := <-reloads:
			return r.Err == nil && r.Config.AppID == "watched"
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	for range reloads {
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("GRAPHSCOPE_TEST_DOTENV=loaded\n"), 0600))
	t.Cleanup(func() { _ = os.Unsetenv("GRAPHSCOPE_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "loaded", os.Getenv("GRAPHSCOPE_TEST_DOTENV"))
}

func TestLoadDotEnv_NoFiles(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
