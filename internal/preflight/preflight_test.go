package preflight

import (
	"strings"
	"testing"
)

func TestParseLimit(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"8192\n", 8192, false},
		{"  65536  ", 65536, false},
		{"524288", 524288, false},
		{"", 0, true},
		{"abc", 0, true},
	}
	for _, tc := range cases {
		got, err := parseLimit(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseLimit(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseLimit(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseLimit(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestWatchLimitErrorBelowMinimum(t *testing.T) {
	err := watchLimitError("fs.inotify.max_user_watches", 4096, 8192)
	if err == nil {
		t.Fatal("expected error for limit below minimum")
	}
	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !strings.Contains(perr.Reason, "4096") {
		t.Errorf("reason should name the current value: %q", perr.Reason)
	}
	if !strings.Contains(perr.Remediation, "watchman") {
		t.Errorf("remediation should suggest watchman: %q", perr.Remediation)
	}
	if !strings.Contains(err.Error(), "sysctl") {
		t.Errorf("full error should include remediation: %q", err.Error())
	}
}

func TestWatchLimitErrorAtMinimum(t *testing.T) {
	if err := watchLimitError("kern.maxfiles", 10240, 10240); err != nil {
		t.Errorf("limit at minimum should pass, got %v", err)
	}
}

func TestWatchLimitErrorAboveMinimum(t *testing.T) {
	if err := watchLimitError("kern.maxfiles", 1 << 20, 10240); err != nil {
		t.Errorf("limit above minimum should pass, got %v", err)
	}
}
