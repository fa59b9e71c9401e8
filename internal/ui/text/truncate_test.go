package text

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"truncated", "hello world", 6, "hello…"},
		{"zero width", "hello", 0, ""},
		{"negative width", "hello", -1, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Truncate(tc.in, tc.width); got != tc.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
			}
		})
	}
}

func TestTruncateANSIAware(t *testing.T) {
	styled := "\x1b[31mred text here\x1b[0m"
	got := Truncate(styled, 20)
	if got != styled {
		t.Errorf("styled string within width should be unchanged, got %q", got)
	}
}

func TestStrip(t *testing.T) {
	if got := Strip("\x1b[31mred\x1b[0m"); got != "red" {
		t.Errorf("Strip = %q, want %q", got, "red")
	}
}
