package browser

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowser_Location_Unset(t *testing.T) {
	b := New(nil, WithoutLaunch())
	assert.Nil(t, b.Location())
}

func TestBrowser_SetLocation(t *testing.T) {
	b := New(nil, WithoutLaunch())

	require.NoError(t, b.SetLocation("http://localhost:8765/callback#access_token=T"))

	loc := b.Location()
	require.NotNil(t, loc)
	assert.Equal(t, "localhost:8765", loc.Host)
	assert.Equal(t, "access_token=T", loc.Fragment)
}

func TestBrowser_SetLocation_Invalid(t *testing.T) {
	b := New(nil, WithoutLaunch())
	assert.Error(t, b.SetLocation("://bad"))
}

func TestBrowser_LocationIsCopy(t *testing.T) {
	b := New(nil, WithoutLaunch())
	require.NoError(t, b.SetLocation("http://localhost/cb#x=1"))

	loc := b.Location()
	loc.Fragment = ""

	assert.Equal(t, "x=1", b.Location().Fragment)
}

func TestBrowser_ReplaceLocation(t *testing.T) {
	b := New(nil, WithoutLaunch())
	u, err := url.Parse("http://localhost/cb")
	require.NoError(t, err)

	b.ReplaceLocation(u)
	assert.Equal(t, "http://localhost/cb", b.Location().String())

	b.ReplaceLocation(nil)
	assert.Nil(t, b.Location())
}

func TestBrowser_Navigate(t *testing.T) {
	var out bytes.Buffer
	var opened string
	b := New(&out, WithOpener(func(_ context.Context, target string) error {
		opened = target
		return nil
	}))

	require.NoError(t, b.Navigate(context.Background(), "https://auth.example.com/dialog"))
	assert.Equal(t, "https://auth.example.com/dialog", opened)
	assert.Contains(t, out.String(), "https://auth.example.com/dialog")
}

func TestBrowser_Navigate_LaunchFails(t *testing.T) {
	failing := WithOpener(func(context.Context, string) error { return errors.New("no display") })

	var out bytes.Buffer
	assert.NoError(t, New(&out, failing).Navigate(context.Background(), "https://x"), "printed URL is enough")

	assert.Error(t, New(nil, failing).Navigate(context.Background(), "https://x"))
}

func TestBrowser_Navigate_WithoutLaunch(t *testing.T) {
	var out bytes.Buffer
	b := New(&out, WithoutLaunch())

	require.NoError(t, b.Navigate(context.Background(), "https://x"))
	assert.Contains(t, out.String(), "https://x")
}

func TestBrowser_Navigate_NowhereToGo(t *testing.T) {
	err := New(nil, WithoutLaunch()).Navigate(context.Background(), "https://x")
	assert.ErrorIs(t, err, ErrNoNavigation)
}
