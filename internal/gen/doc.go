// Package gen generates store-backed implementations of settings interfaces.
//
// Generation approach uses text/template + go/format for readable Go code.
// Each top-level interface is processed with its own Context:
//
//   - walk the interface and its ancestors (analyze.Walker)
//   - classify methods into getters and putters (classify)
//   - map value types to store kinds or carriers (typemap)
//   - check key consistency (check)
//   - bind the cache (CacheBinder) and emit accessors (AccessorEmitter)
//   - assemble the unit (UnitBuilder) and hand the file to an Emitter
package gen
