package validate_test

import (
	"testing"

	"crudadmin/internal/validate"
)

func TestRequired(t *testing.T) {
	if _, ok := validate.Required("   \t"); ok {
		t.Fatal("blank input accepted")
	}
	s, ok := validate.Required("  Widget ")
	if !ok || s != "Widget" {
		t.Fatalf("got %q %v", s, ok)
	}
	if validate.AllRequired("a", " ", "c") {
		t.Fatal("AllRequired accepted a blank value")
	}
	if !validate.AllRequired("a", "b") {
		t.Fatal("AllRequired rejected non-blank values")
	}
}

func TestNumberCoercesToZero(t *testing.T) {
	cases := map[string]float64{
		"12.5":  12.5,
		" 3 ":   3,
		"":      0,
		"abc":   0,
		"-4":    0,
		"NaN":   0,
		"+Inf":  0,
		"0.01":  0.01,
		"1e2":   100,
		"12.5x": 0,
	}
	for in, want := range cases {
		if got := validate.Number(in); got != want {
			t.Errorf("Number(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestID(t *testing.T) {
	for _, bad := range []string{"", "0", "-1", "abc", "1.5", "9999999999999999999"} {
		if _, ok := validate.ID(bad); ok {
			t.Errorf("ID(%q) accepted", bad)
		}
	}
	if n, ok := validate.ID("42"); !ok || n != 42 {
		t.Fatalf("ID(42) = %d %v", n, ok)
	}
}

func TestEmail(t *testing.T) {
	if _, ok := validate.Email("ann@example.com"); !ok {
		t.Fatal("valid email rejected")
	}
	if _, ok := validate.Email("not-an-email"); ok {
		t.Fatal("invalid email accepted")
	}
}
