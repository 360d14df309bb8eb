package api

import "errors"

// Sentinel kinds for API errors.
var errInvalidLimit = errors.New("limit must be a positive integer")
