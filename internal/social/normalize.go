// Package social turns stored platform handles into canonical outbound URLs.
package social

import "strings"

// platformPrefixes maps a known platform to its canonical URL prefix. The
// stored value is a bare handle; whatsapp values are phone numbers and get
// reduced to digits first.
var platformPrefixes = map[string]string{
	"instagram": "https://instagram.com/",
	"tiktok":    "https://tiktok.com/@",
	"whatsapp":  "https://wa.me/",
	"telegram":  "https://t.me/",
	"twitter":   "https://x.com/",
	"facebook":  "https://facebook.com/",
	"youtube":   "https://youtube.com/@",
	"linkedin":  "https://linkedin.com/in/",
}

// Normalize converts a stored platform value into a full outbound URL.
//
// A value already starting with "http" is returned unchanged. Unknown
// platforms fall through unchanged on the assumption the owner stored a
// ready URL. Always returns a string; there are no failure modes.
func Normalize(platform, rawValue string) string {
	if strings.HasPrefix(rawValue, "http") {
		return rawValue
	}

	prefix, ok := platformPrefixes[platform]
	if !ok {
		return rawValue
	}

	value := rawValue
	if platform == "whatsapp" {
		value = digitsOnly(value)
	}

	return prefix + value
}

// Platforms returns the known platform identifiers
func Platforms() []string {
	names := make([]string, 0, len(platformPrefixes))
	for name := range platformPrefixes {
		names = append(names, name)
	}
	return names
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
