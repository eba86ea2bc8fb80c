package contract

import "errors"

var (
	ErrOracleInvoke = errors.New("oracle invoke failed")
	ErrNoExtraction = errors.New("no structured query extracted")
	ErrValidation   = errors.New("validation failed")
)
