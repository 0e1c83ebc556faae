package gen

import (
	"context"
	"errors"
	"fmt"

	"prefs-generator/internal/analyze"
	"prefs-generator/internal/check"
	"prefs-generator/internal/classify"
	"prefs-generator/internal/common"
	"prefs-generator/internal/diagnostic"
	"prefs-generator/internal/directive"
	"prefs-generator/internal/logctx"
	"prefs-generator/internal/match"
	"prefs-generator/internal/setting"
	"prefs-generator/internal/typemap"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Suffix is appended to the interface name to name the generated type.
	Suffix string
	// FileSuffix is appended to the snake-cased interface name to name the file.
	FileSuffix string
	// GenerateComments enables doc comments on generated declarations.
	GenerateComments bool
	// Overrides replaces comment directives; nil means none.
	Overrides *directive.File
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Suffix:           "Prefs",
		FileSuffix:       "_prefs.go",
		GenerateComments: true,
	}
}

// Generator turns annotated interfaces into store-backed implementations.
type Generator struct {
	config GeneratorConfig
	walker *analyze.Walker
}

// NewGenerator creates a Generator resolving ancestors with resolver.
func NewGenerator(config GeneratorConfig, resolver analyze.Resolver) *Generator {
	return &Generator{
		config: config,
		walker: analyze.NewWalker(resolver),
	}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory of the package the file belongs to.
	Dir string
	// Filename is the name of the file (e.g., "example_prefs.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
	// Interface is the qualified name of the implemented interface.
	Interface string
}

// Result is the outcome of one generation run.
type Result struct {
	Files       []GeneratedFile
	Diagnostics diagnostic.Diagnostics
}

// Targets returns the interfaces of table to generate, in load order:
// those with a //prefs:store directive and those named by the overrides.
func (g *Generator) Targets(table *analyze.SymbolTable) []*analyze.InterfaceInfo {
	return table.Annotated(func(info *analyze.InterfaceInfo) bool {
		if directive.Annotated(info.Doc) {
			return true
		}

		_, ok := g.config.Overrides.Lookup(info.ID.String())

		return ok
	})
}

// Generate generates a file for every target of table. Each interface is
// processed independently; diagnostics never stop the run, only internal
// failures do.
func (g *Generator) Generate(ctx context.Context, table *analyze.SymbolTable) (*Result, error) {
	logger := logctx.FromContext(ctx)
	result := &Result{}

	targets := g.Targets(table)
	if common.IsEmpty(targets) {
		logger.Info("no annotated interfaces found")

		return result, nil
	}

	for _, top := range targets {
		gctx, unit, err := g.GenerateUnit(ctx, top)
		result.Diagnostics.Merge(*gctx.Diagnostics)

		if err != nil {
			return result, fmt.Errorf("generating %s: %w", top.ID, err)
		}

		content, err := render(unit)
		if err != nil {
			// Best-effort: write unformatted code to a sidecar file to aid debugging.
			_ = writeDebugUnformatted(top.Dir, unit.Filename, content)

			return result, fmt.Errorf("generating %s: %w", top.ID, err)
		}

		result.Files = append(result.Files, GeneratedFile{
			Dir:       top.Dir,
			Filename:  unit.Filename,
			Content:   content,
			Interface: top.ID.String(),
		})

		logger.Debug("generated unit",
			"interface", top.ID.String(),
			"file", unit.Filename,
			"methods", len(unit.Methods),
			"carriers", len(unit.Carriers),
			"errors", len(gctx.Diagnostics.Errors),
			"warnings", len(gctx.Diagnostics.Warnings))
	}

	return result, nil
}

// GenerateUnit runs the pipeline for one top-level interface with a fresh
// Context: walk, classify, map, check, bind the cache, emit and assemble.
// The Context is returned even on error so its diagnostics are not lost.
func (g *Generator) GenerateUnit(ctx context.Context, top *analyze.InterfaceInfo) (*Context, *Unit, error) {
	gctx := newContext(top, g.config.Suffix)

	g.readDirectives(gctx)

	refs := g.walker.Traverse(ctx, top, gctx.Diagnostics)
	g.describe(gctx, refs)

	gctx.Keys = check.Index(gctx.Descriptors, gctx.Qualified, gctx.Diagnostics)
	gctx.Keys.Check(gctx.Qualified, gctx.Diagnostics)

	NewCacheBinder(gctx).Bind()

	unit, err := g.assemble(gctx)

	return gctx, unit, err
}

func (g *Generator) readDirectives(gctx *Context) {
	dirs, err := directive.ParseInterface(gctx.Top.Doc)
	if err != nil {
		diagnostic.Errorf(gctx.Diagnostics, diagnostic.CodeInvalidDirective, gctx.topLocation(), "%v", err)
	}

	gctx.Directives = g.config.Overrides.Apply(gctx.Qualified, dirs)
}

// describe classifies and maps every traversed method.
func (g *Generator) describe(gctx *Context, refs []analyze.MethodRef) {
	seen := make(map[string]bool, len(refs))

	for _, ref := range refs {
		// Identical methods embedded along two paths are one method.
		if seen[ref.Method.Name] {
			continue
		}

		seen[ref.Method.Name] = true

		loc := diagnostic.Location{Interface: gctx.Qualified, Method: ref.Method.Name, Pos: ref.Method.Pos}

		if check.Reserved(ref.Method.Name) {
			diagnostic.Errorf(gctx.Diagnostics, diagnostic.CodeReservedName, loc,
				"%s is generated for every settings type and cannot be declared as a setting", ref.Method.Name)

			continue
		}

		desc, err := classify.Classify(ref.Method, ref.Owner, gctx.Top)

		switch {
		case errors.Is(err, classify.ErrUnrecognized):
			diagnostic.Errorf(gctx.Diagnostics, diagnostic.CodeUnrecognizedMethod, loc,
				"%v (declared in %s)", err, ref.Owner.ID.Short())

			continue
		case err != nil:
			diagnostic.Errorf(gctx.Diagnostics, diagnostic.CodeInvalidDirective, loc, "%v", err)
		}

		if desc.Role == setting.Getter {
			if raw, ok := g.config.Overrides.Default(gctx.Qualified, desc.Method); ok {
				desc.RawDefault = raw
			}
		}

		g.mapValue(gctx, &desc, ref)
		gctx.Descriptors = append(gctx.Descriptors, &desc)
	}
}

// mapValue resolves the value type and validates the default of desc.
func (g *Generator) mapValue(gctx *Context, desc *setting.Descriptor, ref analyze.MethodRef) {
	vt, created := gctx.Mapper.Resolve(desc.Type)
	desc.Value = vt

	if created != nil && created.Disambiguated() {
		sameBase := g.carriersNamed(gctx, created.BaseName)
		diagnostic.Warnf(gctx.Diagnostics, diagnostic.CodeCarrierRenamed, gctx.location(desc),
			"carrier for %s renamed to %s; %s already wraps %s",
			vt.Type, created.Name, created.BaseName, sameBase)
	}

	if !desc.HasDefault() {
		return
	}

	lit, err := typemap.DefaultLiteral(vt, desc.RawDefault)
	if err == nil && vt.Kind == typemap.KindCarrier {
		lit, err = checkCarrierDefault(ref.Owner, ref.Method, lit, vt.Type, gctx.imports)
	}

	if err != nil {
		diagnostic.Errorf(gctx.Diagnostics, diagnostic.CodeInvalidDefault, gctx.location(desc),
			"default for %s: %v", desc.Method, err)

		return
	}

	desc.Default = lit
}

func (g *Generator) carriersNamed(gctx *Context, name string) string {
	for _, c := range gctx.Mapper.Carriers() {
		if c.Name == name {
			return c.Type.String()
		}
	}

	return common.UnknownStr
}

// assemble renders the accessors and lifecycle methods into a Unit.
func (g *Generator) assemble(gctx *Context) (*Unit, error) {
	top := gctx.Top
	b := NewUnitBuilder(top.PkgName, top.ID.Name, gctx.Impl)
	emitter := NewAccessorEmitter(gctx)

	steps := []func() error{
		func() error { return b.SetFilename(match.SnakeCase(top.ID.Name) + g.config.FileSuffix) },
		func() error { return b.SetComments(g.config.GenerateComments) },
		func() error { return b.AddAssertion(top.ID.Name) },
		func() error { return b.AddAssertion("prefs.Actions") },
		func() error { return b.SetKeys(gctx.keysVar(), gctx.Keys.Declared()) },
		func() error { return b.AddField("store", "prefs.Store") },
		func() error { return b.SetConstructor(constructor(gctx)) },
	}

	if gctx.Cache != nil {
		steps = append(steps,
			func() error { return b.AddAssertion("prefs.CacheActions") },
			func() error { return b.AddField("cache", "*prefs.Cache") },
		)
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}

	for _, d := range gctx.Descriptors {
		if err := b.AddMethod(emitter.Emit(d)); err != nil {
			return nil, err
		}
	}

	// Carriers are rendered after the accessors so their types are qualified
	// with the same imports.
	for _, c := range gctx.Mapper.Carriers() {
		decl := emitter.carrierDecl(c)
		if err := b.AddCarrier(decl.Name, decl.Type); err != nil {
			return nil, err
		}
	}

	for _, m := range lifecycleMethods(gctx) {
		if err := b.AddMethod(m); err != nil {
			return nil, err
		}
	}

	return b.Build(gctx.imports)
}
