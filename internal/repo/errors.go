package repo

import "errors"

var (
	// ErrUserNotFound is returned when a user lookup misses.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicatedValueUnique is returned on unique-constraint violations.
	ErrDuplicatedValueUnique = errors.New("duplicated value in unique column")

	// ErrUnknownDataset is returned for a dataset name outside the fixed five.
	ErrUnknownDataset = errors.New("unknown dataset")
)
