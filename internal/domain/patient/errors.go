package patient

import "errors"

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrInvalidGender   = errors.New("invalid gender value")
	ErrInvalidAge      = errors.New("age must be zero or greater")
	ErrNameRequired    = errors.New("patient name is required")
)
