package domain

import "errors"

var (
	// ErrInvalidConfiguration indicates rejected session parameters
	// (question count or error divisor below 1, empty option alphabet).
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidTransition indicates an operation called in the wrong phase,
	// or an advance attempted while the advance gate is closed.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrInvalidOption indicates an option label outside the configured
	// alphabet, or an unknown confidence tier.
	ErrInvalidOption = errors.New("invalid option")

	// ErrIndexOutOfRange indicates a question index outside [0, N).
	ErrIndexOutOfRange = errors.New("question index out of range")
)
