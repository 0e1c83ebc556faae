package match

import (
	"go/types"
)

// TypeCompatibility represents the level of compatibility between two types.
type TypeCompatibility int

const (
	// TypeIncompatible means the types cannot be converted.
	TypeIncompatible TypeCompatibility = iota
	// TypeConvertible means types are convertible using Go's type conversion.
	TypeConvertible
	// TypeAssignable means the source type can be directly assigned to the target.
	TypeAssignable
	// TypeIdentical means the types are exactly the same.
	TypeIdentical
)

const (
	VerdictIdentical    = "identical"
	VerdictAssignable   = "assignable"
	VerdictConvertible  = "convertible"
	VerdictIncompatible = "incompatible"
)

// String returns a human-readable name for the compatibility level.
func (c TypeCompatibility) String() string {
	switch c {
	case TypeIdentical:
		return VerdictIdentical
	case TypeAssignable:
		return VerdictAssignable
	case TypeConvertible:
		return VerdictConvertible
	case TypeIncompatible:
		return VerdictIncompatible
	default:
		return "unknown"
	}
}

// TypeCompatibilityResult contains detailed information about type compatibility.
type TypeCompatibilityResult struct {
	Compatibility TypeCompatibility
	Reason        string // Human-readable explanation
	SourceType    string // String representation of source type
	TargetType    string // String representation of target type
}

// ScoreTypeCompatibility determines the compatibility between a source and target type.
// Only TypeIdentical is acceptable for a getter/putter pair; the other verdicts
// explain the mismatch.
func ScoreTypeCompatibility(source, target types.Type) TypeCompatibilityResult {
	result := TypeCompatibilityResult{
		SourceType: source.String(),
		TargetType: target.String(),
	}

	switch {
	case types.Identical(source, target):
		result.Compatibility = TypeIdentical
		result.Reason = "types are identical"
	case types.AssignableTo(source, target):
		result.Compatibility = TypeAssignable
		result.Reason = "assignable but not identical"
	case types.ConvertibleTo(source, target):
		result.Compatibility = TypeConvertible
		result.Reason = "convertible only with an explicit conversion"
	default:
		result.Compatibility = TypeIncompatible
		result.Reason = "types are not compatible"
	}

	return result
}
