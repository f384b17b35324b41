package service

import "testing"

func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtube.com/watch?v=abc123&t=42s", "abc123"},
		{"https://youtu.be/abc123", "abc123"},
		{"https://www.youtube.com/shorts/xyz789", "xyz789"},
		{"https://m.youtube.com/watch?v=abc123", "abc123"},
		{"https://example.com/v", ""},
		{"not a url", ""},
		{"", ""},
	}

	for _, tc := range cases {
		if got := ExtractVideoID(tc.url); got != tc.want {
			t.Fatalf("ExtractVideoID(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestFormatISODuration(t *testing.T) {
	cases := []struct {
		iso  string
		want string
	}{
		{"PT1H2M3S", "1:02:03"},
		{"PT5M30S", "5:30"},
		{"PT45S", "0:45"},
		{"not-iso", "not-iso"},
	}

	for _, tc := range cases {
		if got := formatISODuration(tc.iso); got != tc.want {
			t.Fatalf("formatISODuration(%q) = %q, want %q", tc.iso, got, tc.want)
		}
	}
}
