package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/sync/singleflight"

	"github.com/five82/tally/internal/domain"
	"github.com/five82/tally/internal/listing"
	"github.com/five82/tally/internal/search"
)

// Collection paths on the backend.
const (
	PathCourses      = "courses"
	PathContent      = "content-sources"
	PathAccounts     = "finance-accounts"
	PathTransactions = "transactions"
	PathBuckets      = "buckets"
	PathTasks        = "tasks"
)

// ErrDeleteRefused is returned when the server answers a delete with false.
var ErrDeleteRefused = errors.New("delete refused by server")

// Resource is one backend collection.
type Resource[T any, D any] struct {
	client *Client
	path   string
	group  singleflight.Group
}

var _ listing.Service[domain.Course, domain.CourseFilter] = (*Resource[domain.Course, domain.CourseFilter])(nil)

// NewResource binds client to the collection at path.
func NewResource[T any, D any](client *Client, path string) *Resource[T, D] {
	return &Resource[T, D]{client: client, path: path}
}

// Path returns the collection path.
func (r *Resource[T, D]) Path() string { return r.path }

// Search posts filter to <path>/search. Concurrent calls with an identical
// filter share one request. The shared request outlives a cancelled caller so
// a later caller joining it still gets the page; each caller stops waiting
// when its own ctx is done.
func (r *Resource[T, D]) Search(ctx context.Context, filter search.Filter[D]) (search.Result[T], error) {
	key, err := json.Marshal(filter)
	if err != nil {
		return search.Result[T]{}, fmt.Errorf("encode filter: %w", err)
	}
	shared := context.WithoutCancel(ctx)
	ch := r.group.DoChan(string(key), func() (any, error) {
		var res search.Result[T]
		if err := r.client.call(shared, http.MethodPost, r.path+"/search", filter, &res); err != nil {
			return nil, err
		}
		return res, nil
	})
	select {
	case <-ctx.Done():
		return search.Result[T]{}, ctx.Err()
	case out := <-ch:
		if out.Err != nil {
			return search.Result[T]{}, out.Err
		}
		return out.Val.(search.Result[T]), nil
	}
}

// Create posts item to the collection.
func (r *Resource[T, D]) Create(ctx context.Context, item T) (T, error) {
	var saved T
	if err := r.client.call(ctx, http.MethodPost, r.path, item, &saved); err != nil {
		return saved, err
	}
	return saved, nil
}

// Update puts item to <path>/<id>.
func (r *Resource[T, D]) Update(ctx context.Context, item T) (T, error) {
	var saved T
	id, err := keyOf(item)
	if err != nil {
		return saved, err
	}
	if err := r.client.call(ctx, http.MethodPut, r.itemPath(id), item, &saved); err != nil {
		return saved, err
	}
	return saved, nil
}

// Delete removes the row with id.
func (r *Resource[T, D]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("id required")
	}
	var ok *bool
	if err := r.client.call(ctx, http.MethodDelete, r.itemPath(id), nil, &ok); err != nil {
		if errors.Is(err, ErrNoPayload) {
			return nil
		}
		return err
	}
	if ok != nil && !*ok {
		return ErrDeleteRefused
	}
	return nil
}

func (r *Resource[T, D]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

func keyOf(item any) (string, error) {
	k, ok := item.(interface{ Key() string })
	if !ok || k.Key() == "" {
		return "", fmt.Errorf("id required")
	}
	return k.Key(), nil
}

// Resources groups the backend collections.
type Resources struct {
	Courses      *Resource[domain.Course, domain.CourseFilter]
	Content      *Resource[domain.ContentSource, domain.ContentSourceFilter]
	Accounts     *Resource[domain.FinanceAccount, domain.AccountFilter]
	Transactions *Resource[domain.Transaction, domain.TransactionFilter]
	Buckets      *Resource[domain.Bucket, domain.BucketFilter]
	Tasks        *Resource[domain.Task, domain.TaskFilter]
}

// NewResources binds every collection to client.
func NewResources(client *Client) Resources {
	return Resources{
		Courses:      NewResource[domain.Course, domain.CourseFilter](client, PathCourses),
		Content:      NewResource[domain.ContentSource, domain.ContentSourceFilter](client, PathContent),
		Accounts:     NewResource[domain.FinanceAccount, domain.AccountFilter](client, PathAccounts),
		Transactions: NewResource[domain.Transaction, domain.TransactionFilter](client, PathTransactions),
		Buckets:      NewResource[domain.Bucket, domain.BucketFilter](client, PathBuckets),
		Tasks:        NewResource[domain.Task, domain.TaskFilter](client, PathTasks),
	}
}
