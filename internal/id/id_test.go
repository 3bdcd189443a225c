package id

import (
	"regexp"
	"testing"
)

var uuidRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestUUID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		u := UUID()
		if !uuidRe.MatchString(u) {
			t.Fatalf("UUID() = %q, not a valid v4 UUID", u)
		}
		if seen[u] {
			t.Fatalf("UUID() produced duplicate %q", u)
		}
		seen[u] = true
	}
}

func TestShort(t *testing.T) {
	s := Short()
	if len(s) != 16 {
		t.Errorf("Short() length = %d, want 16", len(s))
	}
	if s == Short() {
		t.Error("Short() produced duplicate values")
	}
}
