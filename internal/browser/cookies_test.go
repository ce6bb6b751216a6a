package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCookieStringParsesNameValuePairs(t *testing.T) {
	got := ParseCookieString("session=abc123; theme=dark", "https://app.example.com/login")

	assert.Len(t, got, 2)
	assert.Equal(t, Cookie{Name: "session", Value: "abc123", Domain: "app.example.com", Path: "/"}, got[0])
	assert.Equal(t, Cookie{Name: "theme", Value: "dark", Domain: "app.example.com", Path: "/"}, got[1])
}

func TestParseCookieStringEmpty(t *testing.T) {
	assert.Nil(t, ParseCookieString("", "https://app.example.com"))
	assert.Nil(t, ParseCookieString("   ", "https://app.example.com"))
}

func TestParseCookieStringSkipsMalformedPairs(t *testing.T) {
	got := ParseCookieString("valid=1; novalue; also=ok", "https://app.example.com")
	assert.Len(t, got, 2)
}
