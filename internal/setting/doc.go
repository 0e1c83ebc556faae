// Package setting holds the data model shared by the generator stages:
// persistence keys, accessor roles and setting descriptors.
//
// Key types:
//   - Key: canonical persistence key derived from a method name
//   - Role: getter or putter
//   - Descriptor: one classified accessor method
package setting
