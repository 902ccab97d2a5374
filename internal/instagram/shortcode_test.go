package instagram

import "testing"

func TestExtractShortcode(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.instagram.com/p/CxYz12AbCdE/", "CxYz12AbCdE"},
		{"https://www.instagram.com/p/CxYz12AbCdE", "CxYz12AbCdE"},
		{"https://www.instagram.com/p/CxYz12AbCdE/?igsh=abc", "CxYz12AbCdE"},
		{"https://www.instagram.com/reel/C0ffee/", "C0ffee"},
		{"https://instagram.com/p/ABC123/comments/", "ABC123"},
	}
	for _, tc := range cases {
		got, err := ExtractShortcode(tc.url)
		if err != nil {
			t.Errorf("ExtractShortcode(%q) error: %v", tc.url, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ExtractShortcode(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestExtractShortcodeInvalid(t *testing.T) {
	for _, u := range []string{
		"https://www.instagram.com/someuser/",
		"https://example.com/watch?v=abc",
		"",
	} {
		if _, err := ExtractShortcode(u); err == nil {
			t.Errorf("ExtractShortcode(%q) expected error", u)
		}
	}
}

func TestShortcodeToMediaID(t *testing.T) {
	// Hand-computed against the URL-safe base64 alphabet, where A=0 and _=63.
	cases := []struct {
		shortcode string
		want      string
	}{
		{"A", "0"},
		{"B", "1"},
		{"_", "63"},
		{"BA", "64"},
		{"ABC123", "17522103"},
	}
	for _, tc := range cases {
		got, err := ShortcodeToMediaID(tc.shortcode)
		if err != nil {
			t.Errorf("ShortcodeToMediaID(%q) error: %v", tc.shortcode, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ShortcodeToMediaID(%q) = %q, want %q", tc.shortcode, got, tc.want)
		}
	}
}

func TestShortcodeToMediaIDLong(t *testing.T) {
	// Eleven-character shortcodes exceed 64 bits; the decode must stay exact
	// and deterministic.
	first, err := ShortcodeToMediaID("CxYz12AbCdE")
	if err != nil {
		t.Fatalf("ShortcodeToMediaID: %v", err)
	}
	second, err := ShortcodeToMediaID("CxYz12AbCdE")
	if err != nil {
		t.Fatalf("ShortcodeToMediaID: %v", err)
	}
	if first != second {
		t.Errorf("decode not deterministic: %q vs %q", first, second)
	}
	if len(first) < 19 {
		t.Errorf("11-char shortcode decoded to suspiciously small id %q", first)
	}
}

func TestShortcodeToMediaIDInvalid(t *testing.T) {
	for _, sc := range []string{"", "abc!def", "with space"} {
		if _, err := ShortcodeToMediaID(sc); err == nil {
			t.Errorf("ShortcodeToMediaID(%q) expected error", sc)
		}
	}
}
