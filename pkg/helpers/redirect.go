package helpers

import (
	"net/url"
	"strings"
)

// IsLocalPath reports whether p is a same-site absolute path that a browser
// cannot resolve to another host. Backslashes count as slashes in browsers.
func IsLocalPath(p string) bool {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return false
	}
	if strings.ContainsAny(p, "\\\r\n\t") {
		return false
	}
	u, err := url.Parse(p)
	return err == nil && u.Scheme == "" && u.Host == ""
}
