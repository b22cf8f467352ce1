package worklocation

import "errors"

var (
	ErrWorkLocationNotFound = errors.New("work location not found")
	ErrWorkLocationExists   = errors.New("work location name already exists")
)
