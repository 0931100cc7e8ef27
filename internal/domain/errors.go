package domain

import (
	"errors"

	"availability/internal/isotime"
)

var (
	ErrInvalidRange     = errors.New("invalid range")
	ErrInvalidWeekday   = errors.New("invalid weekday")
	ErrInvalidTimestamp = isotime.ErrInvalidTimestamp
	ErrInvalidOffset    = isotime.ErrInvalidOffset
)
