package gitsource

import (
	"path/filepath"
	"testing"
)

func TestLocalPath(t *testing.T) {
	testCases := []struct {
		name     string
		url      string
		expected string
		wantErr  bool
	}{
		{name: "https", url: "https://github.com/acme/fixtures.git", expected: filepath.Join("repos", "github.com", "acme", "fixtures")},
		{name: "https without suffix", url: "https://gitlab.com/acme/fixtures", expected: filepath.Join("repos", "gitlab.com", "acme", "fixtures")},
		{name: "scp-like", url: "git@github.com:acme/fixtures.git", expected: filepath.Join("repos", "github.com", "acme", "fixtures")},
		{name: "plain path", url: "/srv/fixtures", wantErr: true},
		{name: "host only", url: "https://github.com/", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := LocalPath("repos", tc.url)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Expected an error for %q, got path %q", tc.url, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("LocalPath() returned an unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("Expected path '%s', but got '%s'", tc.expected, got)
			}
		})
	}
}

func TestIsURL(t *testing.T) {
	for source, want := range map[string]bool{
		"https://github.com/acme/fixtures": true,
		"git@github.com:acme/fixtures.git": true,
		"../fixtures.git":                  true,
		"./fixtures":                       false,
		"/srv/fixtures":                    false,
	} {
		if got := IsURL(source); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", source, got, want)
		}
	}
}
