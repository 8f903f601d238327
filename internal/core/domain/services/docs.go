// Package services provides domain services for rules that span aggregates or
// don't naturally belong to a single aggregate root.
//
// The package includes:
//   - ActionAuthorizer: decides whether an actor's role, ownership, and the
//     parcel's current state permit a lifecycle action
//
// The authorizer is deliberately independent of the status transition graph;
// lifecycle operations must pass both checks.
package services
