package template

import (
	"testing"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
)

func TestRenderStringSingleVar(t *testing.T) {
	out, err := RenderString("Para {{recipient}}", map[string]string{"recipient": "posto-3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Para posto-3" {
		t.Fatalf("expected replaced string, got %q", out)
	}
}

func TestRenderStringMultipleVars(t *testing.T) {
	out, err := RenderString("[{{ channel }}] {{recipient}}: {{message}}", map[string]string{
		"channel":   "ward",
		"recipient": "posto-3",
		"message":   "dieta suspensa",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "[ward] posto-3: dieta suspensa" {
		t.Fatalf("expected replaced string, got %q", out)
	}
}

func TestRenderStringEmpty(t *testing.T) {
	out, err := RenderString("", nil)
	if err != nil || out != "" {
		t.Fatalf("expected empty output, got %q, %v", out, err)
	}
}

func TestRenderStringMissingVar(t *testing.T) {
	_, err := RenderString("Para {{recipient}}", map[string]string{})
	if !domain.IsKind(err, domain.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRenderStringMalformed(t *testing.T) {
	for _, in := range []string{"{{message", "a {{ }} b"} {
		if _, err := RenderString(in, map[string]string{"message": "x"}); !domain.IsKind(err, domain.KindInvalidConfig) {
			t.Fatalf("%q: expected invalid config, got %v", in, err)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Validate("{{channel}}/{{recipient}}: {{message}}", MessageVars); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate("plain text", MessageVars); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate("{{bed}}", MessageVars); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected unknown variable error, got %v", err)
	}
}
