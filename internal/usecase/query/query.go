// Package query evaluates JSONPath expressions against a stored registry
// snapshot, e.g. `$.labels[?(@.bitmask == 16)].code`.
package query

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/newgrf/nch/internal/domain"
)

// Result is the outcome of one expression.
type Result struct {
	Expr  string
	Value any
	// Lines is Value rendered one item per line: strings as-is, everything
	// else as compact JSON.
	Lines []string
}

// Eval runs expr against the JSON document in body.
func Eval(body []byte, expr string) (Result, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Result{}, queryError(expr, fmt.Errorf("%w: empty jsonpath expression", domain.ErrInvalidConfig), domain.KindInvalidConfig)
	}

	doc, err := parseJSON(body)
	if err != nil {
		return Result{}, queryError(expr, fmt.Errorf("%w: snapshot is not valid JSON: %v", domain.ErrCorruptSnapshot, err), domain.KindCorruptSnapshot)
	}

	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		return Result{}, queryError(expr, fmt.Errorf("%w: jsonpath error: %v", domain.ErrInvalidConfig, err), domain.KindInvalidConfig)
	}
	if isEmptyValue(val) {
		return Result{Expr: expr, Value: val}, queryError(expr, fmt.Errorf("%w: no value found", domain.ErrNotFound), domain.KindNotFound)
	}

	lines, err := toLines(val)
	if err != nil {
		return Result{}, queryError(expr, err, domain.KindExecution)
	}
	return Result{Expr: expr, Value: val, Lines: lines}, nil
}

func queryError(expr string, err error, kind domain.ErrorKind) error {
	return &domain.OpError{Op: "query.eval", Kind: kind, Path: expr, Err: err}
}

func parseJSON(body []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

func toLines(v any) ([]string, error) {
	if arr, ok := v.([]any); ok {
		out := make([]string, 0, len(arr))
		for _, item := range arr {
			s, err := toString(item)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	}
	s, err := toString(v)
	if err != nil {
		return nil, err
	}
	return []string{s}, nil
}

func toString(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case bool:
		return fmt.Sprint(t), nil
	case float64:
		// Bitmasks are integers; print them without an exponent.
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t)), nil
		}
		return fmt.Sprint(t), nil
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}
