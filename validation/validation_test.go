package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/nlpwire/errors"
)

func TestValidatorUnique(t *testing.T) {
	v := New("decl").Unique("inputs", []string{"txt", "tok", "txt"})
	if len(v.Errors()) != 1 {
		t.Fatalf("expected one duplicate error, got %v", v.Errors())
	}
	if !strings.Contains(v.Errors()[0].Message, `"txt"`) {
		t.Errorf("unexpected message %q", v.Errors()[0].Message)
	}
}

func TestValidatorCustom(t *testing.T) {
	v := New("Tagger").
		Custom(true, "setup", "never reported").
		Custom(false, "setup", "either a setup function or autosetup task classes are required")
	if len(v.Errors()) != 1 || v.Errors()[0].Field != "setup" {
		t.Fatalf("unexpected errors %v", v.Errors())
	}
	if !v.HasErrors() {
		t.Error("expected HasErrors")
	}
}

func TestValidatorValidate(t *testing.T) {
	if err := New("decl").Validate(); err != nil {
		t.Errorf("expected nil, got %v", err)
	}

	err := New("Parse").
		Unique("parameters", []string{"language", "language"}).
		Custom(false, "setup", "a setup function or autosetup task is required").
		Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidDeclaration) {
		t.Errorf("expected INVALID_DECLARATION, got %v", err)
	}
	if !strings.Contains(err.Error(), "setup: a setup function") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

type sample struct {
	ID         string   `yaml:"id" validate:"required,identifier"`
	Extensions []string `yaml:"extensions" validate:"required,min=1,dive,extension"`
	Workers    int      `yaml:"workers" validate:"gte=0"`
}

func TestStructValidateValid(t *testing.T) {
	err := Validate(sample{ID: "conll", Extensions: []string{".conll", "tsv"}})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStructValidateInvalid(t *testing.T) {
	tests := []struct {
		name  string
		in    sample
		field string
	}{
		{"missing id", sample{Extensions: []string{"txt"}}, "id"},
		{"bad identifier", sample{ID: "has space", Extensions: []string{"txt"}}, "id"},
		{"no extensions", sample{ID: "txt"}, "extensions"},
		{"extension with separator", sample{ID: "txt", Extensions: []string{"a/b"}}, "extensions"},
		{"negative workers", sample{ID: "txt", Extensions: []string{"txt"}, Workers: -1}, "workers"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.in)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("expected field %q in %q", tc.field, err.Error())
			}
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("MaxDepth"); got != "max_depth" {
		t.Errorf("expected max_depth, got %q", got)
	}
}
