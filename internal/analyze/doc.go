// Package analyze loads Go packages and describes settings interfaces and
// their ancestors.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to build a
// symbol table of every interface declared in the loaded packages. Ancestors
// outside that table are described from compiled export data instead.
//
// Key types:
//   - TypeID: package import path + type name
//   - InterfaceInfo: methods, embedded interfaces, doc comment lines
//   - Resolver: LocalResolver, ExternalResolver, ChainResolver
//   - Walker: depth-first traversal of an interface and its ancestors
package analyze
