package models

import "testing"

func TestPasswordHashingRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret-pw" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword("s3cret-pw", hash) {
		t.Fatal("correct password did not verify")
	}
	if CheckPassword("wrong-pw", hash) {
		t.Fatal("wrong password verified")
	}
}

func TestPasswordHashSaltUniqueness(t *testing.T) {
	h1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password must differ")
	}
	if !CheckPassword("same-password", h1) || !CheckPassword("same-password", h2) {
		t.Fatal("both hashes must verify against the original password")
	}
}

func TestCheckPasswordNeverErrors(t *testing.T) {
	hash, _ := HashPassword("pw123456")

	cases := []struct {
		name  string
		plain string
		hash  string
	}{
		{"empty plaintext", "", hash},
		{"empty hash", "pw123456", ""},
		{"malformed hash", "pw123456", "not-a-bcrypt-hash"},
		{"both empty", "", ""},
	}
	for _, tc := range cases {
		if CheckPassword(tc.plain, tc.hash) {
			t.Fatalf("%s: expected false", tc.name)
		}
	}
}

func TestRoleCanSign(t *testing.T) {
	if RoleCitizen.CanSign() {
		t.Fatal("citizen must not sign")
	}
	if !RoleAuthority.CanSign() || !RoleAdmin.CanSign() {
		t.Fatal("authority and admin must sign")
	}
	if Role("onlooker").Valid() {
		t.Fatal("unknown role must not validate")
	}
}
