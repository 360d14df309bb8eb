package matchmaker

import "errors"

// Sentinel kinds for matchmaking errors.
var (
	ErrEmptyCatalog       = errors.New("catalog is empty")
	ErrInsufficientModels = errors.New("need at least two models to battle")
)
