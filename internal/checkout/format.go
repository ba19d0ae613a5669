package checkout

import (
	"net/url"
	"strconv"
	"strings"
)

const staticPrefix = "static/"

// FormatAmount renders an integer CFA amount with space-grouped thousands,
// e.g. 36000 -> "36 000". Amounts are whole francs; there is no minor unit.
func FormatAmount(n int) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := strconv.Itoa(n)
	if len(digits) <= 3 {
		return sign + digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(digits[i : i+3])
	}
	return sign + b.String()
}

// NormalizeImageURL turns a catalog image reference into an absolute URL.
// Absolute inputs pass through untouched; relative paths lose a leading "./"
// or "/", gain the static prefix exactly once, and are joined to baseURL.
// The function is idempotent: its output normalizes to itself.
func NormalizeImageURL(raw, baseURL string) string {
	raw = strings.TrimSpace(raw)
	if u, err := url.Parse(raw); err == nil && u.IsAbs() {
		return raw
	}

	p := strings.TrimPrefix(raw, "./")
	p = strings.TrimPrefix(p, "/")
	if !strings.HasPrefix(p, staticPrefix) {
		p = staticPrefix + p
	}
	return strings.TrimRight(baseURL, "/") + "/" + p
}

// encodeComponent percent-encodes a message for the deep link's text
// parameter, keeping %20 for spaces as messaging apps expect.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
