package authUtils

import "testing"

func TestValidEmail(t *testing.T) {
	valid := []string{"a@example.com", "first.last+tag@sub.example.co.in"}
	invalid := []string{"", "plain", "@example.com", "a@b", "a b@example.com"}

	for _, e := range valid {
		if !ValidEmail(e) {
			t.Fatalf("%q should be valid", e)
		}
	}
	for _, e := range invalid {
		if ValidEmail(e) {
			t.Fatalf("%q should be invalid", e)
		}
	}
}

func TestValidPhone(t *testing.T) {
	valid := []string{"9876543210", "+91 98765 43210", "98-76-54-32-10"}
	invalid := []string{"", "abc", "0123", "+"}

	for _, p := range valid {
		if !ValidPhone(p) {
			t.Fatalf("%q should be valid", p)
		}
	}
	for _, p := range invalid {
		if ValidPhone(p) {
			t.Fatalf("%q should be invalid", p)
		}
	}
}
