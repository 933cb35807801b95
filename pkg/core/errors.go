package core

import "errors"

// Common errors.
var (
	ErrNothingSelected = errors.New("no record selected")
	ErrDuplicateID     = errors.New("a record with this id already exists")
	ErrMissingID       = errors.New("could not determine an id for the new record")
	ErrIndexOutOfRange = errors.New("record index out of range")
	ErrNotCreatable    = errors.New("this collection does not support new records")
	ErrLocked          = errors.New("collection file is locked by another process")
)
