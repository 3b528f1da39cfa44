// Package migrations contains the schema versions. Each file registers its
// migrations from init(); cmd/pizza and the kernel tests import this package
// for that side effect.
package migrations
