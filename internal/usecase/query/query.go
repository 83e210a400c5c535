// Package query selects fields out of diet documents with JSONPath.
package query

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
)

// Result reports the outcome of one named expression.
type Result struct {
	Name    string
	Expr    string
	Value   string
	Success bool
	Message string
}

// Document converts any JSON-serializable value (a Snapshot, a
// NutrientSummary) into the generic shape jsonpath walks.
func Document(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Eval evaluates a single expression against doc and renders the match.
func Eval(doc any, expr string) (string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return "", &domain.DomainError{Kind: domain.KindValidation, Msg: "empty jsonpath expression"}
	}

	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		return "", &domain.DomainError{
			Kind:  domain.KindValidation,
			Msg:   fmt.Sprintf("jsonpath %q", expr),
			Cause: err,
		}
	}
	if isEmptyValue(val) {
		return "", &domain.DomainError{Kind: domain.KindNotFound, Msg: fmt.Sprintf("jsonpath %q: no value found", expr)}
	}
	return toString(val)
}

// Apply evaluates every named rule. A failing rule is reported in its Result
// and does not stop the others. Results are ordered by name.
func Apply(doc any, rules map[string]string) (map[string]string, []Result) {
	names := make([]string, 0, len(rules))
	for k := range rules {
		names = append(names, k)
	}
	sort.Strings(names)

	values := map[string]string{}
	results := make([]Result, 0, len(names))
	for _, name := range names {
		expr := strings.TrimSpace(rules[name])
		s, err := Eval(doc, expr)
		if err != nil {
			results = append(results, Result{Name: name, Expr: expr, Message: err.Error()})
			continue
		}
		values[name] = s
		results = append(results, Result{Name: name, Expr: expr, Value: s, Success: true})
	}
	return values, results
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

func toString(v any) (string, error) {
	// wildcard matches come back as a slice
	if arr, ok := v.([]any); ok {
		if len(arr) == 1 {
			return toString(arr[0])
		}
		b, err := json.Marshal(arr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	switch t := v.(type) {
	case string:
		return t, nil
	case float64, bool:
		return fmt.Sprint(t), nil
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}
