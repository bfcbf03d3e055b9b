package store

import "errors"

// ErrNotFound is returned when a record does not exist. Lookups scoped to
// an owner return it both for missing records and for records owned by
// someone else; callers cannot tell the two cases apart.
var ErrNotFound = errors.New("not found")

// ErrEmailTaken is returned when an insert or update would violate the
// unique email constraint. The schema-level constraint is the source of
// truth; application-level existence checks are an early exit only.
var ErrEmailTaken = errors.New("email already taken")
