package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/types"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/tools/go/packages"

	"prefs-generator/internal/logctx"
)

// ErrNotFound is returned when a resolver does not know an interface.
var ErrNotFound = errors.New("interface not found")

// Resolver describes an interface by its TypeID.
type Resolver interface {
	Resolve(ctx context.Context, id TypeID) (*InterfaceInfo, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, id TypeID) (*InterfaceInfo, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context, id TypeID) (*InterfaceInfo, error) {
	return f(ctx, id)
}

// LocalResolver resolves interfaces declared in the current load.
type LocalResolver struct {
	table *SymbolTable
}

// NewLocalResolver creates a resolver over table.
func NewLocalResolver(table *SymbolTable) *LocalResolver {
	return &LocalResolver{table: table}
}

// Resolve implements Resolver.
func (r *LocalResolver) Resolve(_ context.Context, id TypeID) (*InterfaceInfo, error) {
	info := r.table.Lookup(id)
	if info == nil {
		return nil, fmt.Errorf("%w: %s is not declared in the loaded packages", ErrNotFound, id)
	}

	return info, nil
}

// ExternalResolver loads an interface's package by import path from export
// data and describes the interface structurally. Packages are loaded once.
type ExternalResolver struct {
	config Config
	loaded map[string]externalPackage
}

type externalPackage struct {
	pkg *packages.Package
	err error
}

// ExternalLoadMode is the load mode used for ancestors: types only, no syntax.
const ExternalLoadMode = packages.NeedName | packages.NeedTypes

// NewExternalResolver creates a resolver loading packages with config.
func NewExternalResolver(config Config) *ExternalResolver {
	return &ExternalResolver{
		config: config,
		loaded: make(map[string]externalPackage),
	}
}

// Resolve implements Resolver.
func (r *ExternalResolver) Resolve(ctx context.Context, id TypeID) (*InterfaceInfo, error) {
	pkg, err := r.load(ctx, id.PkgPath)
	if err != nil {
		return nil, err
	}

	obj := pkg.Types.Scope().Lookup(id.Name)
	if obj == nil {
		return nil, fmt.Errorf("%w: %s has no type %s", ErrNotFound, id.PkgPath, id.Name)
	}

	tn, ok := obj.(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a type", ErrNotFound, id)
	}

	named, ok := types.Unalias(tn.Type()).(*types.Named)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a named type", ErrNotFound, id)
	}

	iface, ok := named.Underlying().(*types.Interface)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an interface", ErrNotFound, id)
	}

	return describeTypes(named, iface, pkg.Fset, OriginExternal), nil
}

func (r *ExternalResolver) load(ctx context.Context, pkgPath string) (*packages.Package, error) {
	if cached, ok := r.loaded[pkgPath]; ok {
		return cached.pkg, cached.err
	}

	pkg, err := r.loadUncached(ctx, pkgPath)
	r.loaded[pkgPath] = externalPackage{pkg: pkg, err: err}

	logctx.FromContext(ctx).Debug("loaded external package", "package", pkgPath, "error", err)

	return pkg, err
}

func (r *ExternalResolver) loadUncached(ctx context.Context, pkgPath string) (*packages.Package, error) {
	cfg := &packages.Config{
		Mode:       ExternalLoadMode,
		Context:    ctx,
		Dir:        r.config.Dir,
		BuildFlags: r.config.BuildFlags(),
	}

	pkgs, err := packages.Load(cfg, pkgPath)
	if err != nil {
		return nil, fmt.Errorf("%w: loading %s: %w", ErrNotFound, pkgPath, err)
	}

	if len(pkgs) != 1 {
		return nil, fmt.Errorf("%w: %s matched %d packages", ErrNotFound, pkgPath, len(pkgs))
	}

	pkg := pkgs[0]

	var merr *multierror.Error
	for _, e := range pkg.Errors {
		merr = multierror.Append(merr, e)
	}

	if err := merr.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("%w: loading %s: %w", ErrNotFound, pkgPath, err)
	}

	if pkg.Types == nil {
		return nil, fmt.Errorf("%w: %s has no type information", ErrNotFound, pkgPath)
	}

	return pkg, nil
}

// ChainResolver tries each resolver in order and returns the first success.
type ChainResolver []Resolver

// Resolve implements Resolver.
func (c ChainResolver) Resolve(ctx context.Context, id TypeID) (*InterfaceInfo, error) {
	var merr *multierror.Error

	for _, r := range c {
		info, err := r.Resolve(ctx, id)
		if err == nil {
			return info, nil
		}

		merr = multierror.Append(merr, err)
	}

	if merr == nil {
		return nil, fmt.Errorf("%w: %s (no resolvers)", ErrNotFound, id)
	}

	merr.ErrorFormat = joinFormat

	return nil, merr
}

// joinFormat renders a multierror on one line.
func joinFormat(errs []error) string {
	parts := make([]string, len(errs))
	for i, err := range errs {
		parts[i] = err.Error()
	}

	return strings.Join(parts, "; ")
}
