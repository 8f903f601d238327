// Package kernel provides core domain primitives shared across the parcel
// tracking domain model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//
// These primitives are immutable and thread-safe, and enforce their invariants
// at construction time so that domain objects built on top of them are always
// in a valid state.
package kernel
