package bandcamp

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var artistNameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]*$`)

// NormalizeURL turns user input into a page URL. Absolute URLs are returned
// as given; a bare artist name such as "someartist" becomes
// "https://someartist.bandcamp.com/music".
func NormalizeURL(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("empty url")
	}

	if u, err := url.Parse(input); err == nil && u.IsAbs() {
		if u.Scheme != "http" && u.Scheme != "https" {
			return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
		}
		if u.Host == "" {
			return "", fmt.Errorf("missing host in %q", input)
		}
		return u.String(), nil
	}

	if !artistNameRe.MatchString(input) {
		return "", fmt.Errorf("%q is neither a url nor an artist name", input)
	}
	return fmt.Sprintf("https://%s.bandcamp.com/music", strings.ToLower(input)), nil
}
