package match

import (
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreTypeCompatibility(t *testing.T) {
	pkg := types.NewPackage("example.com/ui", "ui")
	theme := types.NewNamed(types.NewTypeName(token.NoPos, pkg, "Theme", nil), types.Typ[types.String], nil)
	strSlice := types.NewSlice(types.Typ[types.String])
	tags := types.NewNamed(types.NewTypeName(token.NoPos, pkg, "Tags", nil), strSlice, nil)

	tests := []struct {
		name   string
		source types.Type
		target types.Type
		want   TypeCompatibility
	}{
		{"identical", types.Typ[types.Int], types.Typ[types.Int], TypeIdentical},
		{"assignable", strSlice, tags, TypeAssignable},
		{"convertible", theme, types.Typ[types.String], TypeConvertible},
		{"numeric convertible", types.Typ[types.Int], types.Typ[types.Int64], TypeConvertible},
		{"incompatible", types.Typ[types.Bool], types.Typ[types.String], TypeIncompatible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreTypeCompatibility(tt.source, tt.target)
			assert.Equal(t, tt.want, got.Compatibility)
			assert.Equal(t, tt.want.String(), got.Compatibility.String())
			assert.NotEmpty(t, got.Reason)
		})
	}
}
