package utils

import (
	"net/url"
	"strings"
)

// IsLocalURL adresin aynı siteye ait göreli bir yol olup olmadığını kontrol eder.
// "//host", "/\host" ve şema içeren adresler reddedilir.
func IsLocalURL(raw string) bool {
	if raw == "" || raw[0] != '/' {
		return false
	}
	if len(raw) > 1 && (raw[1] == '/' || raw[1] == '\\') {
		return false
	}
	if strings.ContainsAny(raw, "\r\n\t") {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}
