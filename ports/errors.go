package ports

import "errors"

// ErrTrainingRequired is returned by any read path whose backing collection
// has never been populated. Callers must train before querying.
var ErrTrainingRequired = errors.New("training required: no model has been trained yet")

// ErrInvalidArgument is returned when a caller-supplied value fails
// validation before any index mutation begins.
var ErrInvalidArgument = errors.New("invalid argument")
