// Package user contains the registered-account entity, the role enumeration,
// and the Actor value object carrying the verified identity of a request.
package user
