package jalali

import (
	"errors"
	"testing"

	"github.com/tinoosan/daftar/internal/errs"
)

func TestParseParts(t *testing.T) {
	d, err := ParseParts(" 1403", "01", "5 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != (Date{1403, 1, 5}) {
		t.Fatalf("unexpected date %s", d)
	}
	bad := [][3]string{
		{"x", "1", "1"},
		{"1403", "", "1"},
		{"1403", "1", "1.5"},
		{"1403", "7", "31"},
		{"1403", "13", "1"},
	}
	for _, b := range bad {
		if _, err := ParseParts(b[0], b[1], b[2]); !errors.Is(err, errs.ErrInvalidDate) {
			t.Fatalf("%v: expected ErrInvalidDate, got %v", b, err)
		}
	}
}
