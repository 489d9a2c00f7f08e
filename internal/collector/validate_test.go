package collector

import (
	"errors"
	"testing"

	apperrors "github.com/agbru/gradecalc/internal/errors"
)

func TestParseGrade(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    float64
		wantErr error
	}{
		{"7.5", 7.5, nil},
		{"7,5", 7.5, nil},
		{"10", 10, nil},
		{"0", 0, nil},
		{"0,0", 0, nil},
		{" 9.99 ", 9.99, nil},
		{"11", 0, apperrors.ErrOutOfRange},
		{"10.01", 0, apperrors.ErrOutOfRange},
		{"-0.5", 0, apperrors.ErrOutOfRange},
		{"1e400", 0, apperrors.ErrOutOfRange},
		{"NaN", 0, apperrors.ErrOutOfRange},
		{"inf", 0, apperrors.ErrOutOfRange},
		{"", 0, apperrors.ErrNotANumber},
		{"abc", 0, apperrors.ErrNotANumber},
		{"7,5,1", 0, apperrors.ErrNotANumber},
		{"7 5", 0, apperrors.ErrNotANumber},
		{"0x1p3", 0, apperrors.ErrNotANumber},
		{"0X1P-1", 0, apperrors.ErrNotANumber},
		{"0x8", 0, apperrors.ErrNotANumber},
		{"1_0", 0, apperrors.ErrNotANumber},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseGrade(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseGrade(%q) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				var validationErr apperrors.ValidationError
				if !errors.As(err, &validationErr) || validationErr.Field != FieldGrade {
					t.Errorf("ParseGrade(%q) should return a grade ValidationError, got %v", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseGrade(%q) unexpected error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseGrade(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseGrade_CommaMatchesDot(t *testing.T) {
	t.Parallel()
	comma, err1 := ParseGrade("7,5")
	dot, err2 := ParseGrade("7.5")
	if err1 != nil || err2 != nil || comma != dot {
		t.Errorf("ParseGrade(7,5) = %v/%v, ParseGrade(7.5) = %v/%v", comma, err1, dot, err2)
	}
}

func TestParseSubject(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"Historia", "Historia", false},
		{"  Química orgánica \t", "Química orgánica", false},
		{"", "", true},
		{" \t ", "", true},
	}
	for _, tt := range tests {
		got, err := ParseSubject(tt.in)
		if tt.wantErr {
			if !errors.Is(err, apperrors.ErrEmptySubject) {
				t.Errorf("ParseSubject(%q) error = %v, want ErrEmptySubject", tt.in, err)
			}
			if userMessage(err) != MsgEmptySubject {
				t.Errorf("userMessage = %q, want %q", userMessage(err), MsgEmptySubject)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseSubject(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestParseContinue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"s", true, false},
		{"S", true, false},
		{"si", true, false},
		{"Si", true, false},
		{"sí", true, false},
		{"Sí", true, false},
		{"SÍ", true, false},
		{"si\u0301", true, false}, // decomposed accent
		{" s ", true, false},
		{"n", false, false},
		{"N", false, false},
		{"no", false, false},
		{"NO", false, false},
		{"x", false, true},
		{"", false, true},
		{"yes", false, true},
		{"sii", false, true},
	}

	for _, tt := range tests {
		got, err := ParseContinue(tt.in)
		if tt.wantErr {
			if !errors.Is(err, apperrors.ErrInvalidAnswer) {
				t.Errorf("ParseContinue(%q) error = %v, want ErrInvalidAnswer", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseContinue(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestUserMessage_PlainError(t *testing.T) {
	t.Parallel()
	if got := userMessage(errors.New("boom")); got != "boom" {
		t.Errorf("userMessage() = %q, want %q", got, "boom")
	}
}
