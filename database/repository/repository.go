package repository

import "context"

// IndexEnsurer is implemented by the MongoDB repositories.
type IndexEnsurer interface {
	EnsureIndexes(ctx context.Context) error
}
