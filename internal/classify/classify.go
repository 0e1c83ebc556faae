// Package classify decides the accessor role of interface methods.
package classify

import (
	"errors"
	"fmt"
	"go/types"

	"prefs-generator/internal/analyze"
	"prefs-generator/internal/directive"
	"prefs-generator/internal/setting"
)

// ParamName is the parameter name used by every generated putter.
const ParamName = "value"

// ErrUnrecognized is returned for methods that are neither getters nor putters.
var ErrUnrecognized = errors.New("unrecognized method")

// Classify determines the role and key of m, declared by owner and reached
// from top.
//
// A getter takes no parameters and returns one value. A putter takes one
// value and returns nothing, or returns the owner or top interface (fluent).
// Errors wrap ErrUnrecognized or directive.ErrInvalid.
func Classify(m analyze.MethodInfo, owner, top *analyze.InterfaceInfo) (setting.Descriptor, error) {
	desc := setting.Descriptor{
		Method: m.Name,
		Owner:  owner.ID.String(),
		Pos:    m.Pos,
	}

	sig := m.Signature
	if sig == nil {
		return desc, fmt.Errorf("%w: %s has no signature", ErrUnrecognized, m.Name)
	}

	if sig.TypeParams().Len() > 0 || sig.Variadic() {
		return desc, fmt.Errorf("%w: %s must not be generic or variadic", ErrUnrecognized, m.Name)
	}

	params, results := sig.Params().Len(), sig.Results().Len()

	switch {
	case params == 0 && results == 1:
		desc.Role = setting.Getter
		desc.Type = sig.Results().At(0).Type()

	case params == 1 && results == 0:
		desc.Role = setting.Putter
		desc.Type = sig.Params().At(0).Type()

	case params == 1 && results == 1:
		if !isFluentResult(sig.Results().At(0).Type(), owner, top) {
			return desc, fmt.Errorf("%w: putter %s may only return %s", ErrUnrecognized, m.Name, top.ID.Short())
		}

		desc.Role = setting.Putter
		desc.Type = sig.Params().At(0).Type()
		desc.Fluent = true
		desc.Result = sig.Results().At(0).Type()

	default:
		return desc, fmt.Errorf("%w: %s has %d parameter(s) and %d result(s)", ErrUnrecognized, m.Name, params, results)
	}

	desc.Key = setting.KeyFromMethodName(m.Name, desc.Role)
	if desc.Key.IsZero() {
		return desc, fmt.Errorf("%w: %s yields an empty key", ErrUnrecognized, m.Name)
	}

	if desc.Role == setting.Putter {
		desc.ParamName = ParamName
	}

	md, err := directive.ParseMethod(m.Doc)
	if err != nil {
		return desc, err
	}

	if err := applyMethodDirectives(&desc, md); err != nil {
		return desc, err
	}

	return desc, nil
}

func applyMethodDirectives(desc *setting.Descriptor, md directive.Method) error {
	if md.Default != "" {
		if desc.Role != setting.Getter {
			return fmt.Errorf("%w: default is only allowed on getters", directive.ErrInvalid)
		}

		desc.RawDefault = md.Default
	}

	if md.OnPut != setting.OnPutInherit {
		if desc.Role != setting.Putter {
			return fmt.Errorf("%w: onput is only allowed on putters", directive.ErrInvalid)
		}

		desc.OnPut = md.OnPut
	}

	return nil
}

func isFluentResult(t types.Type, owner, top *analyze.InterfaceInfo) bool {
	for _, iface := range []*analyze.InterfaceInfo{owner, top} {
		if iface != nil && iface.Named != nil && types.Identical(t, iface.Named) {
			return true
		}
	}

	return false
}
