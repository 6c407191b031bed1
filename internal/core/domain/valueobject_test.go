package domain

import (
	"strings"
	"testing"
)

func TestNewEmailNormalizes(t *testing.T) {
	r := NewEmail("  Alice@Example.COM ")

	if r.IsFailure() {
		t.Fatalf("unexpected failure: %v", r.Err())
	}
	if got := r.Value().String(); got != "alice@example.com" {
		t.Fatalf("expected lower-cased address, got %q", got)
	}
}

func TestValidateEmailRejections(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		message string
	}{
		{"empty", "", "Email is required"},
		{"blank", "   ", "Email is required"},
		{"no at sign", "alice.example.com", "Invalid email address"},
		{"no domain dot", "alice@example", "Invalid email address"},
		{"embedded space", "ali ce@example.com", "Invalid email address"},
		{"too long", strings.Repeat("a", 250) + "@x.com", "Email must not exceed 254 characters"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := ValidateEmail(tc.raw)
			if r.IsSuccess() {
				t.Fatalf("expected %q to be rejected", tc.raw)
			}
			if got := r.Err().Message; got != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, got)
			}
		})
	}
}

func TestValidatePasswordPolicy(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		fragment string
	}{
		{"empty", "", "Password is required"},
		{"too short", "Ab1!", "at least 8 characters"},
		{"too long", "A1!" + strings.Repeat("a", 98), "not exceed 100 characters"},
		{"no uppercase", "password1!", "uppercase letter"},
		{"no lowercase", "PASSWORD1!", "lowercase letter"},
		{"no digit", "Password!!", "digit"},
		{"no symbol", "Password11", "special character"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := ValidatePassword(tc.raw)
			if r.IsSuccess() {
				t.Fatalf("expected %q to be rejected", tc.raw)
			}
			if got := r.Err().Message; !strings.Contains(got, tc.fragment) {
				t.Fatalf("expected message containing %q, got %q", tc.fragment, got)
			}
		})
	}

	if r := ValidatePassword("Sup3r$ecret!"); r.IsFailure() {
		t.Fatalf("expected valid password to pass, got %v", r.Err())
	}
}

func TestValidatePasswordIfProvided(t *testing.T) {
	if r := ValidatePasswordIfProvided(""); r.IsFailure() {
		t.Fatal("absent password should pass as no change")
	}
	if r := ValidatePasswordIfProvided("   "); r.IsFailure() {
		t.Fatal("blank password should pass as no change")
	}
	if r := ValidatePasswordIfProvided("weak"); r.IsSuccess() {
		t.Fatal("present password must go through the full policy")
	}
}

func TestNameValidation(t *testing.T) {
	if r := NewFirstName("  Élodie "); r.IsFailure() {
		t.Fatalf("unicode letters should pass: %v", r.Err())
	} else if got := r.Value().String(); got != "Élodie" {
		t.Fatalf("expected trimmed name, got %q", got)
	}

	cases := []struct {
		raw     string
		message string
	}{
		{"", "First name is required"},
		{"J0hn", "First name can only contain letters"},
		{strings.Repeat("a", 51), "First name must not exceed 50 characters"},
	}
	for _, tc := range cases {
		r := ValidateFirstName(tc.raw)
		if r.IsSuccess() {
			t.Fatalf("expected %q to be rejected", tc.raw)
		}
		if got := r.Err().Message; got != tc.message {
			t.Fatalf("expected %q, got %q", tc.message, got)
		}
	}

	if r := ValidateLastName(""); r.Err().Message != "Last name is required" {
		t.Fatalf("unexpected last-name message: %q", r.Err().Message)
	}
}

func TestPhoneNormalization(t *testing.T) {
	r := NewPhone("+1 (202) 555-0123")

	if r.IsFailure() {
		t.Fatalf("unexpected failure: %v", r.Err())
	}
	if got := r.Value().String(); got != "+12025550123" {
		t.Fatalf("expected normalized number, got %q", got)
	}

	if r := ValidatePhone(""); r.Err().Message != "Phone number is required" {
		t.Fatalf("unexpected message: %q", r.Err().Message)
	}
	if r := ValidatePhone("12345"); r.IsSuccess() {
		t.Fatal("expected short number to be rejected")
	}
	if r := ValidatePhone("+1234567890123456"); r.IsSuccess() {
		t.Fatal("expected long number to be rejected")
	}
}

func TestCollectFailuresPreservesOrder(t *testing.T) {
	messages := CollectFailures(
		ValidateEmail(""),
		ValidatePassword("Sup3r$ecret!"),
		ValidateFirstName(""),
		ValidatePhone(""),
	)

	want := []string{"Email is required", "First name is required", "Phone number is required"}
	if len(messages) != len(want) {
		t.Fatalf("expected %d failures, got %d: %v", len(want), len(messages), messages)
	}
	for i := range want {
		if messages[i] != want[i] {
			t.Fatalf("failure %d: expected %q, got %q", i, want[i], messages[i])
		}
	}
}

func TestCollectFailuresEmptyOnAllValid(t *testing.T) {
	messages := CollectFailures(ValidateEmail("a@b.co"), ValidatePassword("Sup3r$ecret!"))
	if len(messages) != 0 {
		t.Fatalf("expected no failures, got %v", messages)
	}
}
