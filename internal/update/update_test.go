package update

import (
	"context"
	"testing"
)

func TestNewer(t *testing.T) {
	tests := []struct {
		current string
		latest  string
		want    bool
	}{
		{"v0.1.0", "v0.2.0", true},
		{"v1.0.0", "v1.0.0", false},
		{"v2.0.0", "v1.0.0", false},
		{"0.1.0", "v0.2.0", true},                // mixed v prefix
		{"0.1.0-3-gabcdef", "0.1.0", true},       // git-describe prerelease < release
		{"0.2.0", "0.1.0-3-gabcdef", false},      // release > prerelease
		{"dev", "v1.0.0", true},                  // unparseable current
		{"v1.0.0", "dev", false},                 // unparseable latest
		{"dev", "dev", false},                    // both unparseable
		{"v0.0.1", "v0.0.2", true},               // patch bump
		{"v0.1.0", "v0.0.9", false},              // minor beats patch
	}

	for _, tt := range tests {
		t.Run(tt.current+"_vs_"+tt.latest, func(t *testing.T) {
			if got := Newer(tt.current, tt.latest); got != tt.want {
				t.Errorf("Newer(%q, %q) = %v, want %v", tt.current, tt.latest, got, tt.want)
			}
		})
	}
}

func TestCheckSkipsDevelopmentBuilds(t *testing.T) {
	for _, version := range []string{"dev", "", "not-a-version"} {
		rel, err := Check(context.Background(), version, "halcyonlab/packmon")
		if err != nil {
			t.Fatalf("Check(%q): unexpected error: %v", version, err)
		}
		if rel != nil {
			t.Errorf("Check(%q): expected nil release, got %+v", version, rel)
		}
	}
}

func TestApplyRejectsDevelopmentBuilds(t *testing.T) {
	if _, err := Apply(context.Background(), "dev", "halcyonlab/packmon"); err == nil {
		t.Fatal("expected error applying update for a dev build")
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"v1.0.0", false},
		{"1.0.0", false},
		{"0.1.0-3-gabcdef", false},
		{"v0.1.0-rc.1", false},
		{"dev", true},
		{"", true},
		{"not-a-version", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := parseVersion(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseVersion(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
