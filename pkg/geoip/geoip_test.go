package geoip

import "testing"

func TestNewReader_EmptyPath(t *testing.T) {
	r, err := NewReader("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r != nil {
		t.Fatalf("expected nil reader for empty path")
	}
}

func TestNewReader_MissingFile(t *testing.T) {
	r, err := NewReader("/nonexistent/GeoLite2-Country.mmdb")
	if err != nil {
		t.Fatalf("expected graceful nil for missing file, got %v", err)
	}
	if r != nil {
		t.Fatalf("expected nil reader for missing file")
	}
}

func TestNilReader_SafeCalls(t *testing.T) {
	var r *Reader
	if got := r.CountryCode("8.8.8.8"); got != "" {
		t.Fatalf("expected empty country from nil reader, got %q", got)
	}
	if r.IsLoaded() {
		t.Fatalf("nil reader must not report loaded")
	}
	if r.Provider() != "none" {
		t.Fatalf("nil reader provider should be none")
	}
	if err := r.Close(); err != nil {
		t.Fatalf("nil close should be nil, got %v", err)
	}
}

func TestDetectProvider(t *testing.T) {
	cases := map[string]string{
		"/data/GeoLite2-Country.mmdb":   "maxmind",
		"/data/dbip-country-lite.mmdb":  "dbip",
		"/data/IP2LOCATION-LITE.mmdb":   "ip2location",
		"/data/whatever.mmdb":           "unknown",
	}
	for path, want := range cases {
		if got := detectProvider(path); got != want {
			t.Errorf("detectProvider(%q) = %q, want %q", path, got, want)
		}
	}
}
