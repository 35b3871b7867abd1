package dates

import "testing"

func TestParseDailyTitle(t *testing.T) {
	tests := []struct {
		title string
		ok    bool
		want  string
	}{
		{"2025-09-07", true, "2025-09-07"},
		{"2025.09.07", true, "2025-09-07"},
		{"2025/09/07", true, "2025-09-07"},
		{"2025-13-40", false, ""},
		{"2025-02-30", false, ""},
		{"Meeting 2025-09-07", false, ""},
		{"2025-09-07 Meeting", false, ""},
		{"not a date", false, ""},
		{"", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got, ok := ParseDailyTitle(tt.title)
			if ok != tt.ok {
				t.Fatalf("ParseDailyTitle(%q) ok = %v, want %v", tt.title, ok, tt.ok)
			}
			if ok && got.Format(DateLayout) != tt.want {
				t.Errorf("ParseDailyTitle(%q) = %s, want %s", tt.title, got.Format(DateLayout), tt.want)
			}
		})
	}
}

func TestCanonicalDaily(t *testing.T) {
	if got := CanonicalDaily("2025.09.07"); got != "2025-09-07" {
		t.Errorf("CanonicalDaily = %q, want 2025-09-07", got)
	}
	if got := CanonicalDaily("Shopping List"); got != "Shopping List" {
		t.Errorf("non-daily title changed: %q", got)
	}
}

func TestFromUnix(t *testing.T) {
	ts := 1735689600.5 // 2025-01-01T00:00:00Z and change
	got, ok := FromUnix(&ts)
	if !ok || got != "2025-01-01" {
		t.Errorf("FromUnix = %q, %v; want 2025-01-01, true", got, ok)
	}

	if _, ok := FromUnix(nil); ok {
		t.Error("expected ok=false for nil timestamp")
	}
}
