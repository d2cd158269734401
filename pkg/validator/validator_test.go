package validator

import "testing"

func TestNotBlank(t *testing.T) {
	t.Parallel()

	type form struct {
		Title string `validate:"required,notblank"`
	}

	if err := ValidateStruct(form{Title: "Little Free Library"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// required alone lets whitespace-only strings through
	if err := ValidateStruct(form{Title: "   "}); err == nil {
		t.Fatal("expected whitespace-only title to fail")
	}

	if err := ValidateStruct(form{Title: ""}); err == nil {
		t.Fatal("expected empty title to fail")
	}
}

func TestNotBlank_Omitempty(t *testing.T) {
	t.Parallel()

	type patch struct {
		Name *string `validate:"omitempty,notblank"`
	}

	if err := ValidateStruct(patch{}); err != nil {
		t.Fatalf("nil field should pass: %v", err)
	}

	blank := " "
	if err := ValidateStruct(patch{Name: &blank}); err == nil {
		t.Fatal("expected blank name to fail")
	}
}
