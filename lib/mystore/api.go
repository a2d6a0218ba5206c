package mystore

import (
	"context"
	"os"
)

type ctxTransactionKey struct{}

type Filter struct {
	Field   string
	Compare string
	Value   any
}

//go:generate mockgen -source=api.go -package mystore -destination store_mock.go Store
type Store[T any] interface {
	RunInTransaction(c context.Context, f func(c context.Context) error) error
	Put(c context.Context, uid string, value T) error
	Get(c context.Context, uid string) (T, bool, error)
	Delete(c context.Context, uid string) error
	List(c context.Context) ([]T, error)
	Query(c context.Context, filters []Filter, orderByField string) ([]T, error)
}

// New selects the most durable backend available: the local file-based
// store when DATA_DIR is set, Google Cloud Datastore when running on
// gcloud, an in-memory store otherwise.
func New[T any](c context.Context) (Store[T], func(), error) {
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		return newFileStore[T](c, dir)
	}

	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		return newGcloudStore[T](c)
	}

	return newInMemoryStore[T](c)
}

func NewInMemoryStore[T any](c context.Context) (Store[T], func(), error) {
	return newInMemoryStore[T](c)
}

func NewFileStore[T any](c context.Context, dir string) (Store[T], func(), error) {
	return newFileStore[T](c, dir)
}
