// Package policy holds repository-wide source checks run as tests.
//
// The checks load every package in the module with golang.org/x/tools and
// enforce the cgo boundary: only internal/cabi and cmd/libvalist may import
// "C", and only cmd/libvalist may carry //export directives, naming exactly
// the entry points a C host resolves.
package policy
