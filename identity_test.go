package main

import (
	"regexp"
	"testing"
)

// uuidV4Pattern matches the 8-4-4-4-12 hex layout with the version nibble
// fixed to 4 and the variant nibble in {8,9,a,b}.
var uuidV4Pattern = regexp.MustCompile(
	`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// TestNewUserToken_UUIDv4Shape verifies minted tokens are UUIDv4-shaped so
// clients can persist and resend them verbatim.
func TestNewUserToken_UUIDv4Shape(t *testing.T) {
	for i := 0; i < 100; i++ {
		token := newUserToken()
		if !uuidV4Pattern.MatchString(token) {
			t.Fatalf("token %q is not a v4 UUID", token)
		}
	}
}

// TestNewUserToken_Unique sanity-checks that successive tokens differ.
func TestNewUserToken_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := newUserToken()
		if seen[token] {
			t.Fatalf("duplicate token generated: %s", token)
		}
		seen[token] = true
	}
}
