// Package template renders channel message templates with {{name}}
// placeholders.
package template

import (
	"fmt"
	"strings"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
)

// MessageVars are the placeholders available to notification templates.
var MessageVars = []string{"channel", "message", "recipient"}

// RenderString replaces {{VAR}} placeholders with vars values.
// It returns an error if a variable is missing or a placeholder is malformed.
func RenderString(input string, vars map[string]string) (string, error) {
	var out strings.Builder
	err := walk(input, func(literal string) {
		out.WriteString(literal)
	}, func(key string) error {
		value, ok := vars[key]
		if !ok {
			return &domain.DomainError{
				Kind: domain.KindValidation,
				Msg:  fmt.Sprintf("missing variable %q", key),
			}
		}
		out.WriteString(value)
		return nil
	})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

// Validate checks that input is well formed and only names allowed variables.
func Validate(input string, allowed []string) error {
	known := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		known[a] = true
	}
	return walk(input, func(string) {}, func(key string) error {
		if !known[key] {
			return &domain.DomainError{
				Kind: domain.KindInvalidConfig,
				Msg:  fmt.Sprintf("unknown variable %q", key),
			}
		}
		return nil
	})
}

func walk(input string, literal func(string), expr func(string) error) error {
	rest := input
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			literal(rest)
			return nil
		}

		literal(rest[:start])
		rest = rest[start+2:]

		end := strings.Index(rest, "}}")
		if end == -1 {
			return &domain.DomainError{
				Kind: domain.KindInvalidConfig,
				Msg:  "unclosed template expression",
			}
		}

		key := strings.TrimSpace(rest[:end])
		if key == "" {
			return &domain.DomainError{
				Kind: domain.KindInvalidConfig,
				Msg:  "empty template expression",
			}
		}
		if err := expr(key); err != nil {
			return err
		}
		rest = rest[end+2:]
	}
}
