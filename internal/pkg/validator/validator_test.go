package validator

import (
	"math"
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidJobCode(t *testing.T) {
	valid := []string{"24-105", "PHX-EAST-7", "A1", "2024-RETAIL"}
	invalid := []string{"", "a", "-105", "phx-east", "CODE WITH SPACE", "ABCDEFGHIJKLMNOPQRSTU"}
	for _, code := range valid {
		if !IsValidJobCode(code) {
			t.Errorf("IsValidJobCode(%q) = false, want true", code)
		}
	}
	for _, code := range invalid {
		if IsValidJobCode(code) {
			t.Errorf("IsValidJobCode(%q) = true, want false", code)
		}
	}
}

func TestIsValidHours(t *testing.T) {
	cases := []struct {
		hours float64
		want  bool
	}{
		{0, true},
		{8.25, true},
		{24, true},
		{30, true}, // above the cap is clamped downstream, not rejected
		{-0.5, false},
		{math.NaN(), false},
	}
	for _, c := range cases {
		got := IsValidHours(c.hours)
		if got != c.want {
			t.Errorf("IsValidHours(%v) = %v, want %v", c.hours, got, c.want)
		}
	}
}

func TestIsValidCoordinateBounds(t *testing.T) {
	if !IsValidLatitude(33.4484) || !IsValidLongitude(-112.074) {
		t.Error("expected Phoenix coordinates to validate")
	}
	if IsValidLatitude(91) || IsValidLongitude(-181) {
		t.Error("expected out-of-range coordinates to fail")
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-06-02"); !ok {
		t.Error(`IsValidDate("2025-06-02") = false, want true`)
	}
	for _, bad := range []string{"06/02/2025", "2025-13-01", "yesterday", ""} {
		if _, ok := IsValidDate(bad); ok {
			t.Errorf("IsValidDate(%q) = true, want false", bad)
		}
	}
}

func TestIsMonday(t *testing.T) {
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)
	if !IsMonday(monday) {
		t.Error("expected 2025-06-02 to be a Monday")
	}
	if IsMonday(tuesday) {
		t.Error("expected 2025-06-03 not to be a Monday")
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "hours", Message: "hours must not be negative"},
		{Field: "job_id", Message: "job_id is required"},
	}

	m := errs.ToMap()
	if len(m) != 2 {
		t.Fatalf("ToMap() returned %d entries, want 2", len(m))
	}
	if m["hours"] != "hours must not be negative" {
		t.Errorf("ToMap()[hours] = %q", m["hours"])
	}
	if errs.Error() == "" {
		t.Error("Error() should join field messages")
	}
}
