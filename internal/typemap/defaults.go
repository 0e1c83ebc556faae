package typemap

import (
	"errors"
	"fmt"
	"go/parser"
	"strconv"
	"strings"

	"prefs-generator/internal/common"
)

// ErrInvalidDefault is returned when a default literal does not fit its value type.
var ErrInvalidDefault = errors.New("invalid default")

// DefaultLiteral validates raw against v and returns the Go expression to emit.
//
// Accepted spellings:
//   - String: a Go string literal, or bare text which gets quoted
//   - Int, Int64, Float32, Bool: anything strconv accepts for the width
//   - StringSet: a comma separated list ("a, b, c")
//   - Carrier: any Go expression assignable to the wrapped type
func DefaultLiteral(v ValueType, raw string) (string, error) {
	raw = strings.TrimSpace(raw)

	switch v.Kind {
	case KindString:
		return stringLiteral(raw)

	case KindInt:
		if _, err := strconv.ParseInt(raw, 0, strconv.IntSize); err != nil {
			return "", fmt.Errorf("%w: %q is not an int: %w", ErrInvalidDefault, raw, err)
		}

		return raw, nil

	case KindInt64:
		if _, err := strconv.ParseInt(raw, 0, 64); err != nil {
			return "", fmt.Errorf("%w: %q is not an int64: %w", ErrInvalidDefault, raw, err)
		}

		return raw, nil

	case KindFloat32:
		if _, err := strconv.ParseFloat(raw, 32); err != nil {
			return "", fmt.Errorf("%w: %q is not a float32: %w", ErrInvalidDefault, raw, err)
		}

		return raw, nil

	case KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return "", fmt.Errorf("%w: %q is not a bool: %w", ErrInvalidDefault, raw, err)
		}

		return strconv.FormatBool(b), nil

	case KindStringSet:
		return stringSetLiteral(raw), nil

	case KindCarrier:
		if _, err := parser.ParseExpr(raw); err != nil {
			return "", fmt.Errorf("%w: %q is not a Go expression: %w", ErrInvalidDefault, raw, err)
		}

		return raw, nil

	default:
		return "", fmt.Errorf("%w: unresolved value type", ErrInvalidDefault)
	}
}

func stringLiteral(raw string) (string, error) {
	if strings.HasPrefix(raw, `"`) || strings.HasPrefix(raw, "`") {
		if _, err := strconv.Unquote(raw); err != nil {
			return "", fmt.Errorf("%w: malformed string literal %s", ErrInvalidDefault, raw)
		}

		return raw, nil
	}

	return strconv.Quote(raw), nil
}

func stringSetLiteral(raw string) string {
	var items []string

	for item := range strings.SplitSeq(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		if s, err := strconv.Unquote(item); err == nil {
			item = s
		}

		items = append(items, strconv.Quote(item))
	}

	return common.RuntimePkgName + ".NewStringSet(" + strings.Join(items, ", ") + ")"
}
