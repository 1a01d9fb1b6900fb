// ABOUTME: Tests for CLI helper functions.
// ABOUTME: Covers date parsing and table formatting helpers.
package main

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/fittrack/fittrack/internal/models"
)

func TestParseDateDefaultsToToday(t *testing.T) {
	got, err := parseDate("")
	if err != nil {
		t.Fatalf("parseDate failed: %v", err)
	}
	if got != time.Now().Format(models.DateFormat) {
		t.Errorf("parseDate(\"\") = %s, want today", got)
	}
}

func TestParseDateValid(t *testing.T) {
	got, err := parseDate("2026-08-01")
	if err != nil {
		t.Fatalf("parseDate failed: %v", err)
	}
	if got != "2026-08-01" {
		t.Errorf("parseDate = %s, want 2026-08-01", got)
	}
}

func TestParseDateRejectsBadFormats(t *testing.T) {
	for _, bad := range []string{"08/01/2026", "2026-13-01", "yesterday"} {
		if _, err := parseDate(bad); err == nil {
			t.Errorf("parseDate(%q) should fail", bad)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %s, want short", got)
	}
	if got := truncate("a very long workout note", 10); got != "a very ..." {
		t.Errorf("truncate = %q, want 'a very ...'", got)
	}
	if n := utf8.RuneCountInString(truncate("a very long workout note", 10)); n != 10 {
		t.Error("truncated string exceeds max length")
	}

	// Multibyte text counts characters, not bytes
	if got := truncate("Лыжная тренировка", 10); got != "Лыжная ..." {
		t.Errorf("truncate = %q, want 'Лыжная ...'", got)
	}
	if got := truncate("五公里晨跑", 10); got != "五公里晨跑" {
		t.Errorf("truncate = %q, want unchanged", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("run", 6); got != "run   " {
		t.Errorf("padRight = %q, want 'run   '", got)
	}
	if got := padRight("longer", 3); got != "longer" {
		t.Errorf("padRight = %q, want unchanged", got)
	}
	if got := padRight("бег", 6); got != "бег   " {
		t.Errorf("padRight = %q, want three trailing spaces", got)
	}
}
