package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name    string
		err     *ParseError
		wantMsg string
	}{
		{
			name:    "without cause",
			err:     NewParse("chord", "H#"),
			wantMsg: `failed to parse chord "H#"`,
		},
		{
			name:    "with cause",
			err:     &ParseError{Kind: "key", Input: "X", Err: fmt.Errorf("bad letter")},
			wantMsg: `failed to parse key "X": bad letter`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrParse) {
				t.Errorf("errors.Is(%v, ErrParse) = false, want true", tt.err)
			}
		})
	}

	t.Run("cause is reachable", func(t *testing.T) {
		cause := fmt.Errorf("bad letter")
		err := &ParseError{Kind: "key", Input: "X", Err: cause}
		if !errors.Is(err, cause) {
			t.Error("underlying error not reachable through Unwrap")
		}
	})
}

func TestTypedErrorsUnwrapToSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantMsg  string
		wantBase error
	}{
		{
			name:     "conversion",
			err:      NewConversion("numeric", "symbol"),
			wantMsg:  "cannot convert numeric to symbol without a reference key",
			wantBase: ErrInvalidConversion,
		},
		{
			name:     "no key with operation",
			err:      NewNoKeySet("change song key"),
			wantMsg:  "cannot change song key, the original key is unknown",
			wantBase: ErrNoKeySet,
		},
		{
			name:     "no key without operation",
			err:      &NoKeySetError{},
			wantMsg:  "the original key is unknown",
			wantBase: ErrNoKeySet,
		},
		{
			name:     "unknown node",
			err:      NewUnknownNodeType("banana"),
			wantMsg:  `unknown node type: "banana"`,
			wantBase: ErrUnknownNodeType,
		},
		{
			name:     "validation with field",
			err:      NewValidation("capo", "must be a number"),
			wantMsg:  "validation failed for capo: must be a number",
			wantBase: ErrInvalidInput,
		},
		{
			name:     "validation without field",
			err:      &ValidationError{Message: "empty"},
			wantMsg:  "validation failed: empty",
			wantBase: ErrInvalidInput,
		},
		{
			name:     "unsupported with reason",
			err:      NewUnsupported("format", "pdf output is not available"),
			wantMsg:  "unsupported format: pdf output is not available",
			wantBase: ErrUnsupported,
		},
		{
			name:     "unsupported without reason",
			err:      &UnsupportedError{Feature: "encoding"},
			wantMsg:  "unsupported encoding",
			wantBase: ErrUnsupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, tt.wantBase) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.wantBase)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	err := Wrap(ErrNoKeySet, "changing key")
	if err.Error() != "changing key: no key set" {
		t.Errorf("Wrap() = %q, want %q", err.Error(), "changing key: no key set")
	}
	if !Is(err, ErrNoKeySet) {
		t.Error("wrapped error lost its sentinel")
	}

	err = Wrapf(NewUnknownNodeType("x"), "line %d", 3)
	var unknown *UnknownNodeTypeError
	if !As(err, &unknown) {
		t.Fatal("As() failed to find UnknownNodeTypeError")
	}
	if unknown.Type != "x" {
		t.Errorf("Type = %q, want %q", unknown.Type, "x")
	}
}
