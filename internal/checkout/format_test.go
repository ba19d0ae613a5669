package checkout

import "testing"

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{7, "7"},
		{950, "950"},
		{1000, "1 000"},
		{8000, "8 000"},
		{36000, "36 000"},
		{123456, "123 456"},
		{1234567, "1 234 567"},
		{-25000, "-25 000"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.in); got != tc.want {
			t.Errorf("FormatAmount(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeImageURL(t *testing.T) {
	const base = "https://shop.example"

	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"absolute http passes through", "http://cdn.example/img/lamp.png", "http://cdn.example/img/lamp.png"},
		{"absolute https passes through", "https://cdn.example/img/lamp.png", "https://cdn.example/img/lamp.png"},
		{"bare filename", "lamp.png", "https://shop.example/static/lamp.png"},
		{"dot-slash relative", "./img/lamp.png", "https://shop.example/static/img/lamp.png"},
		{"leading slash", "/img/lamp.png", "https://shop.example/static/img/lamp.png"},
		{"static prefix kept once", "static/img/lamp.png", "https://shop.example/static/img/lamp.png"},
		{"slash static prefix kept once", "/static/img/lamp.png", "https://shop.example/static/img/lamp.png"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeImageURL(tc.raw, base); got != tc.want {
				t.Fatalf("NormalizeImageURL(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestNormalizeImageURLIdempotent(t *testing.T) {
	const base = "https://shop.example"
	inputs := []string{"lamp.png", "./img/lamp.png", "/static/img/lamp.png", "https://cdn.example/a.png"}
	for _, raw := range inputs {
		once := NormalizeImageURL(raw, base)
		twice := NormalizeImageURL(once, base)
		if once != twice {
			t.Errorf("not idempotent for %q: %q then %q", raw, once, twice)
		}
	}
}

func TestNormalizeImageURLTrailingSlashBase(t *testing.T) {
	got := NormalizeImageURL("img/lamp.png", "https://shop.example/")
	want := "https://shop.example/static/img/lamp.png"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
