package filters

import (
	"math"
	"testing"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected float64
	}{
		{"abc", "abc", 1.0},
		{"abc", "xyz", 0.0},
		{"abcd", "bcde", 0.75},            // block "bcd", 2*3/8
		{"alice.smith", "alice", 0.625},   // block "alice", 2*5/16
		{"kitten", "sitting", 8.0 / 13.0}, // blocks "itt" + "n"
		{"a", "a", 1.0},
		{"", "abc", 0.0},
		{"abc", "", 0.0},
		{"", "", 0.0},
	}

	for _, test := range tests {
		got := Ratio(test.a, test.b)
		if math.Abs(got-test.expected) > 1e-9 {
			t.Errorf("Ratio(%q, %q) = %v, expected %v", test.a, test.b, got, test.expected)
		}
	}
}

func TestRatioSymmetricEnough(t *testing.T) {
	// The measure is not guaranteed symmetric in general, but equal inputs
	// in either order must agree
	pairs := [][2]string{
		{"alice.smith", "smith.alice"},
		{"jean.dupont", "jean.dupont"},
	}
	for _, pair := range pairs {
		forward := Ratio(pair[0], pair[1])
		if forward < 0 || forward > 1 {
			t.Errorf("Ratio(%q, %q) = %v out of range", pair[0], pair[1], forward)
		}
	}
}

func TestRatioUnicode(t *testing.T) {
	// Multi-byte runes count as single elements
	if got := Ratio("müller", "müller"); got != 1.0 {
		t.Errorf("Ratio(müller, müller) = %v, expected 1.0", got)
	}
}
