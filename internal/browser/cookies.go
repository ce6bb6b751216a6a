package browser

import (
	"net/url"
	"strings"
)

// ParseCookieString parses the --cookie / auth.cookie flag, a
// semicolon-separated "name=value" list in the conventional Cookie
// header format, into Cookies scoped to baseURL's host.
func ParseCookieString(raw, baseURL string) []Cookie {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	domain := ""
	if u, err := url.Parse(baseURL); err == nil {
		domain = u.Hostname()
	}

	var cookies []Cookie
	for _, pair := range strings.Split(raw, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		cookies = append(cookies, Cookie{
			Name:   strings.TrimSpace(name),
			Value:  strings.TrimSpace(value),
			Domain: domain,
			Path:   "/",
		})
	}
	return cookies
}
