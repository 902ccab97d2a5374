package cookies

import "testing"

func TestParse(t *testing.T) {
	m := Parse("csrftoken=abc; sessionid=xyz%3A1; junk; ds_user_id=42")

	if m["csrftoken"] != "abc" {
		t.Errorf("expected csrftoken=abc, got %q", m["csrftoken"])
	}
	if m["sessionid"] != "xyz%3A1" {
		t.Errorf("expected sessionid preserved, got %q", m["sessionid"])
	}
	if m["ds_user_id"] != "42" {
		t.Errorf("expected ds_user_id=42, got %q", m["ds_user_id"])
	}
	if _, ok := m["junk"]; ok {
		t.Error("malformed part should be skipped")
	}
}

func TestParse_ValueWithEquals(t *testing.T) {
	m := Parse("rur=\"CLN=54\"")
	if m["rur"] != "\"CLN=54\"" {
		t.Errorf("embedded '=' should stay in the value, got %q", m["rur"])
	}
}

func TestFormat_CanonicalOrder(t *testing.T) {
	m := map[string]string{
		"mid":       "m",
		"csrftoken": "c",
		"sessionid": "s",
		"other":     "o",
	}

	got := Format(m)
	want := "csrftoken=c; sessionid=s; mid=m; other=o"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	// Same map, same string, every time.
	if again := Format(m); again != got {
		t.Errorf("formatting is not stable: %q vs %q", got, again)
	}
}

func TestEssentialString_DropsNonEssential(t *testing.T) {
	m := Parse("csrftoken=c; sessionid=s; datr=tracking; ig_did=d")

	got := EssentialString(m)
	want := "csrftoken=c; sessionid=s; ig_did=d"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	in := "csrftoken=c; sessionid=s; ds_user_id=1; mid=m"
	if got := Format(Parse(in)); got != in {
		t.Errorf("round trip changed the string: %q -> %q", in, got)
	}
}
