package utils

import "testing"

func TestNormalizeString(t *testing.T) {
	if got := NormalizeString("  John   Smith \t"); got != "John Smith" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail(" John.Smith@Example.COM "); got != "john.smith@example.com" {
		t.Errorf("got %q", got)
	}
}

func TestPhone(t *testing.T) {
	if got := NormalizePhone(" +1 (555) 010-0199 "); got != "+15550100199" {
		t.Errorf("NormalizePhone = %q", got)
	}
	if got := NormalizePhone("555+0100"); got != "5550100" {
		t.Errorf("inner plus must be dropped, got %q", got)
	}
	if IsValidPhone("12345") {
		t.Error("too short accepted")
	}
	if !IsValidPhone("+44 20 7946 0958") {
		t.Error("valid phone rejected")
	}
}

func TestNormalizePhoneDropsNonASCIIDigits(t *testing.T) {
	// Arabic-Indic and fullwidth digits
	if got := NormalizePhone("+١٢٣٤٥٦٧٨ 555"); got != "+555" {
		t.Errorf("NormalizePhone = %q, want +555", got)
	}
	if IsValidPhone("١٢٣٤٥٦٧٨٩") {
		t.Error("non-ASCII digits counted toward phone length")
	}
	if got := NormalizePhone("５５５0100"); got != "0100" {
		t.Errorf("NormalizePhone = %q, want 0100", got)
	}
}
