package instagram

import (
	"fmt"
	"math/big"
	"strings"
)

// shortcodeAlphabet is Instagram's URL-safe base64 alphabet. A shortcode is a
// base-64 positional number over it, most significant digit first.
const shortcodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// ExtractShortcode pulls the media shortcode out of a post URL
// (…/p/<code>/… or …/reel/<code>/…).
func ExtractShortcode(postURL string) (string, error) {
	for _, marker := range []string{"/p/", "/reel/"} {
		_, rest, ok := strings.Cut(postURL, marker)
		if !ok {
			continue
		}
		if i := strings.IndexAny(rest, "/?"); i >= 0 {
			rest = rest[:i]
		}
		if rest != "" {
			return rest, nil
		}
	}
	return "", fmt.Errorf("no shortcode in post URL %q", postURL)
}

// ShortcodeToMediaID decodes a shortcode to Instagram's internal numeric
// media id, returned as a decimal string. Shortcodes exceed 64 bits, so the
// accumulator is a big.Int.
func ShortcodeToMediaID(shortcode string) (string, error) {
	if shortcode == "" {
		return "", fmt.Errorf("empty shortcode")
	}

	id := new(big.Int)
	base := big.NewInt(64)
	for _, c := range shortcode {
		idx := strings.IndexRune(shortcodeAlphabet, c)
		if idx < 0 {
			return "", fmt.Errorf("invalid shortcode character %q", c)
		}
		id.Mul(id, base)
		id.Add(id, big.NewInt(int64(idx)))
	}
	return id.String(), nil
}

// mediaIDFromPostURL combines extraction and decoding.
func mediaIDFromPostURL(postURL string) (string, error) {
	shortcode, err := ExtractShortcode(postURL)
	if err != nil {
		return "", err
	}
	return ShortcodeToMediaID(shortcode)
}
