package validation

import (
	"fmt"
	"net/url"
	"strings"
)

// unsafeURLChars may close the attribute or script string a URL is embedded
// in, or start markup.
const unsafeURLChars = "\"'`<>\\ \t\r\n;|$()"

// ValidateURL accepts absolute http(s) URLs that are safe to embed in a
// generated page, as the Mermaid module import or the stylesheet link.
func ValidateURL(rawURL string) error {
	if i := strings.IndexAny(rawURL, unsafeURLChars); i >= 0 {
		return fmt.Errorf("URL contains unsafe character %q", rawURL[i])
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	switch parsed.Scheme {
	case "http", "https":
	default:
		return fmt.Errorf("invalid URL scheme %q (only http/https allowed)", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL %q has no host", rawURL)
	}
	if parsed.User != nil {
		return fmt.Errorf("URL must not carry credentials")
	}

	return nil
}
