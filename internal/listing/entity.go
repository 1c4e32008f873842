package listing

import (
	"context"

	"github.com/five82/tally/internal/search"
)

// Row is what a screen needs to render and describe a row.
type Row interface {
	Key() string
	Label() string
	Value(field string) any
}

// Entity is a Row that can be validated and deep-copied for editing.
type Entity[T any] interface {
	Row
	Validate() error
	Clone() T
}

// Service is the backend resource behind a screen.
type Service[T any, D any] interface {
	Search(ctx context.Context, filter search.Filter[D]) (search.Result[T], error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, item T) (T, error)
	Delete(ctx context.Context, id string) error
}
