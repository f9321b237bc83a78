package domain

import "errors"

var (
	ErrInvalidPeriodSelection = errors.New("invalid period selection")
	ErrDatasetNotFound        = errors.New("dataset not found")
	ErrUnsupportedFormat      = errors.New("unsupported file format")
	ErrInvalidRequest         = errors.New("invalid request")
	ErrInvalidRecord          = errors.New("invalid trade record")
)
