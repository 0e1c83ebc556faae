package gen

import (
	"fmt"
	"strconv"

	"prefs-generator/internal/setting"
	"prefs-generator/internal/typemap"
)

// Method is one method of the generated type.
type Method struct {
	Doc     string
	Name    string
	Params  string
	Results string
	// Body lines, without the leading tab of the function body.
	Body []string
}

// AccessorEmitter renders getter and putter methods for one unit.
type AccessorEmitter struct {
	ctx *Context
}

// NewAccessorEmitter creates an AccessorEmitter writing types through ctx.
func NewAccessorEmitter(ctx *Context) *AccessorEmitter {
	return &AccessorEmitter{ctx: ctx}
}

// Emit renders the method for d.
func (e *AccessorEmitter) Emit(d *setting.Descriptor) Method {
	if d.Role == setting.Putter {
		return e.putter(d)
	}

	return e.getter(d)
}

func (e *AccessorEmitter) getter(d *setting.Descriptor) Method {
	typ := e.ctx.imports.typeString(d.Type)

	m := Method{
		Name:    d.Method,
		Results: typ,
	}

	if e.ctx.Cache == nil {
		m.Body = e.read(d, "return ")

		return m
	}

	m.Body = e.ctx.Cache.decorateGetter(d, typ, e.read(d, "v := "))

	return m
}

// read returns the statements loading d from the store; the last one
// applies lead to the loaded value.
func (e *AccessorEmitter) read(d *setting.Descriptor, lead string) []string {
	key := strconv.Quote(d.Key.String())
	def := defaultExpr(d)

	if !d.UsesCarrier() {
		return []string{fmt.Sprintf("%ss.store.Get%s(%s, %s)", lead, d.Value.Kind.Suffix(), key, def)}
	}

	init := d.Value.Carrier.Name + "{}"
	if d.Default != "" {
		init = fmt.Sprintf("%s{Value: %s}", d.Value.Carrier.Name, d.Default)
	}

	return []string{
		"c := " + init,
		fmt.Sprintf("s.store.GetObject(%s, &c)", key),
		lead + "c.Value",
	}
}

func (e *AccessorEmitter) putter(d *setting.Descriptor) Method {
	m := Method{
		Name:   d.Method,
		Params: d.ParamName + " " + e.ctx.imports.typeString(d.Type),
	}

	if d.Fluent {
		m.Results = e.ctx.imports.typeString(d.Result)
	}

	key := strconv.Quote(d.Key.String())
	write := e.write(d, key)

	onPut := setting.OnPutInherit
	if e.ctx.Cache != nil {
		onPut = d.OnPut.Resolve(e.ctx.Cache.OnPut)
	}

	switch {
	case !d.Value.Nullable:
		m.Body = append(m.Body, write)

		switch onPut {
		case setting.OnPutEvict:
			m.Body = append(m.Body, evictLine(key))
		case setting.OnPutUpdate:
			m.Body = append(m.Body, updateLine(key, d.ParamName))
		}

	default:
		removed := []string{fmt.Sprintf("s.store.Remove(%s)", key)}
		stored := []string{write}

		if onPut == setting.OnPutUpdate {
			removed = append(removed, evictLine(key))
			stored = append(stored, updateLine(key, d.ParamName))
		}

		m.Body = append(m.Body, fmt.Sprintf("if %s == nil {", d.ParamName))
		m.Body = append(m.Body, indent(removed)...)
		m.Body = append(m.Body, "} else {")
		m.Body = append(m.Body, indent(stored)...)
		m.Body = append(m.Body, "}")

		if onPut == setting.OnPutEvict {
			m.Body = append(m.Body, evictLine(key))
		}
	}

	if d.Fluent {
		m.Body = append(m.Body, "", "return s")
	}

	return m
}

func (e *AccessorEmitter) write(d *setting.Descriptor, key string) string {
	if !d.UsesCarrier() {
		return fmt.Sprintf("s.store.Put%s(%s, %s)", d.Value.Kind.Suffix(), key, d.ParamName)
	}

	return fmt.Sprintf("s.store.PutObject(%s, %s{Value: %s})", key, d.Value.Carrier.Name, d.ParamName)
}

// defaultExpr is the value a getter falls back to.
func defaultExpr(d *setting.Descriptor) string {
	if d.Default != "" {
		return d.Default
	}

	return d.Value.ZeroLiteral()
}

// carrierDecl renders the declaration data of a carrier.
func (e *AccessorEmitter) carrierDecl(c *typemap.Carrier) Field {
	return Field{Name: c.Name, Type: e.ctx.imports.typeString(c.Type)}
}

func indent(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = "\t" + l
	}

	return out
}
