package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestIsEmail(t *testing.T) {
	tests := map[string]bool{
		"john.smith@example.com": true,
		"user@exam_ple.com":      false,
		"user@[192.168.0.1]":     false,
		"not-an-email":           false,
		"":                       false,
	}
	for in, want := range tests {
		if got := Default.IsEmail(in); got != want {
			t.Errorf("IsEmail(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestEmailTagAndVarAgree(t *testing.T) {
	type req struct {
		Email string `json:"email" validate:"omitempty,email"`
	}
	for _, addr := range []string{
		"john.smith@example.com",
		"user@example.com.",
		"user@exam_ple.com",
		`"john doe"@example.com`,
		"user@[192.168.0.1]",
	} {
		structOK := Default.Validate(req{Email: addr}) == nil
		if varOK := Default.IsEmail(addr); structOK != varOK {
			t.Errorf("%q: struct tag = %v, IsEmail = %v", addr, structOK, varOK)
		}
	}
}

func TestFieldNamesUseJSONTags(t *testing.T) {
	type req struct {
		RoomID int64 `json:"room_id" validate:"required"`
	}
	err := Default.Validate(req{})
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) != 1 {
		t.Fatalf("err = %v", err)
	}
	if fieldErrs[0].Field() != "room_id" {
		t.Errorf("field = %q, want room_id", fieldErrs[0].Field())
	}
}
