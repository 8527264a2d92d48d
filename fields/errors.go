package fields

import "errors"

// ErrSkipField signals that a field produces no value for the current
// operation and should be omitted from the result entirely: an absent
// optional input without a default, or an absent source during output.
var ErrSkipField = errors.New("fields: skip field")

// ErrNoInstance marks a broken relation during attribute resolution: the
// step exists structurally but the record it points at does not. Resolution
// swallows it and yields null instead of failing. Attributer implementations
// return it (possibly wrapped) for missing records.
var ErrNoInstance = errors.New("fields: instance does not exist")

// ErrNoAttribute is returned by Attributer implementations when the named
// attribute is not part of the value at all. Unlike ErrNoInstance this is a
// structural failure and surfaces to the caller.
var ErrNoAttribute = errors.New("fields: no such attribute")

// ErrInvalidCatalog wraps YAML errors from message catalog parsing.
var ErrInvalidCatalog = errors.New("fields: invalid message catalog")
