package cattery

import (
	perr "cattery/internal/platform/errors"
)

// Transition failures. Messages are stable keys clients localize
var (
	ErrAdoptionLimitReached = perr.New(perr.ErrorCodeTooManyRequests, "adoption_limit_reached")
	ErrNameEmpty            = perr.New(perr.ErrorCodeValidation, "name_empty")
	ErrNameInvalid          = perr.New(perr.ErrorCodeInvalidArgument, "name_invalid")
	ErrNameExists           = perr.New(perr.ErrorCodeDuplicateKey, "name_exists")
)
