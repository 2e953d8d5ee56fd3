package shared

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewPrice(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"1000", "1000.00", false},
		{"0", "0.00", false},
		{"19.999", "20.00", false},
		{"-0.01", "", true},
		{"abc", "", true},
		{"9999999999999999.99", "9999999999999999.99", false},
		{"9999999999999999.995", "", true},
		{"10000000000000000", "", true},
		{"1e40", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := ParsePrice(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("ParsePrice(%q) error = %v, want ErrInvalidInput", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePrice(%q) error = %v", tt.in, err)
			}
			if p.String() != tt.want {
				t.Errorf("String() = %q, want %q", p.String(), tt.want)
			}
		})
	}
}

func TestPriceEquals(t *testing.T) {
	a, _ := NewPrice(decimal.NewFromInt(1000))
	b := MustPrice("1000.00")
	if !a.Equals(b) {
		t.Error("1000 and 1000.00 should be equal")
	}
	if a.Equals(MustPrice("1000.01")) {
		t.Error("different amounts should not be equal")
	}
}

func TestDomainErrorCarriesStack(t *testing.T) {
	err := NewNotFoundError("enquiry")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("errors.Is(ErrNotFound) = false")
	}

	var stacker Stacker
	if !errors.As(err, &stacker) {
		t.Fatal("domain error should implement Stacker")
	}
	stack := stacker.Stack()
	if len(stack) == 0 {
		t.Fatal("expected captured stack")
	}
	if !strings.Contains(stack[0], "TestDomainErrorCarriesStack") {
		t.Errorf("first frame = %q, want the calling test", stack[0])
	}
}

func TestEventRecorder(t *testing.T) {
	var r EventRecorder
	if r.PullEvents() != nil {
		t.Error("empty recorder should return nil")
	}
}
