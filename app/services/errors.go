// Package services holds the auth and order use cases. Services depend on
// the store interfaces from app/repositories and report failures with the
// sentinels below; controllers map them to HTTP statuses.
package services

import "errors"

var (
	// ErrConflict: username or email already taken.
	ErrConflict = errors.New("conflict")
	// ErrAuthenticationFailed: bad credentials or an identity that no longer resolves.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrNotFound: the user or order does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotOwner: the caller does not own the order.
	ErrNotOwner = errors.New("not owner")
)
