package mystore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// fileStore keeps all entities of one kind in a single JSON file that is
// overwritten wholesale on every mutation. It is the durable stand-in for
// browser local-storage: a handful of small records, no partial updates.
// An unreadable or corrupt file degrades to an empty dataset.
type fileStore[T any] struct {
	sync.Mutex
	filename string
}

func newFileStore[T any](c context.Context, dir string) (*fileStore[T], func(), error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating data-dir %s: %s", dir, err)
	}

	val := new(T)
	kind := fmt.Sprintf("%T", *val)
	if strings.Contains(kind, ".") {
		kind = strings.Split(kind, ".")[1]
	}

	return &fileStore[T]{
		filename: filepath.Join(dir, kind+".json"),
	}, func() {}, nil
}

func (s *fileStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	s.Lock()

	ctx := context.WithValue(c, ctxTransactionKey{}, true)

	err := f(ctx)
	if err != nil {
		s.Unlock()

		return err
	}

	s.Unlock()

	return nil
}

func (s *fileStore[T]) Put(c context.Context, uid string, value T) error {
	nonTransactional := c.Value(ctxTransactionKey{}) == nil

	if nonTransactional {
		s.Lock()
		defer s.Unlock()
	}

	items := s.load()
	items[uid] = value

	return s.save(items)
}

func (s *fileStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	nonTransactional := c.Value(ctxTransactionKey{}) == nil

	if nonTransactional {
		s.Lock()
		defer s.Unlock()
	}

	items := s.load()
	result, exists := items[uid]

	return result, exists, nil
}

func (s *fileStore[T]) Delete(c context.Context, uid string) error {
	nonTransactional := c.Value(ctxTransactionKey{}) == nil

	if nonTransactional {
		s.Lock()
		defer s.Unlock()
	}

	items := s.load()
	delete(items, uid)

	return s.save(items)
}

func (s *fileStore[T]) List(c context.Context) ([]T, error) {
	nonTransactional := c.Value(ctxTransactionKey{}) == nil

	if nonTransactional {
		s.Lock()
		defer s.Unlock()
	}

	items := s.load()
	result := make([]T, 0, len(items))
	for _, v := range items {
		result = append(result, v)
	}

	return result, nil
}

// Query does not support filtering or ordering: the dataset is a handful of
// records, so the full list is returned and callers select in memory. Only
// the datastore-backed store honors filters.
func (s *fileStore[T]) Query(c context.Context, filters []Filter, orderByField string) ([]T, error) {
	return s.List(c)
}

func (s *fileStore[T]) load() map[string]T {
	items := map[string]T{}

	data, err := os.ReadFile(s.filename)
	if err != nil {
		return items
	}

	err = json.Unmarshal(data, &items)
	if err != nil {
		return map[string]T{}
	}

	return items
}

func (s *fileStore[T]) save(items map[string]T) error {
	data, err := json.MarshalIndent(items, "", "\t")
	if err != nil {
		return fmt.Errorf("error serializing %s: %s", s.filename, err)
	}

	err = os.WriteFile(s.filename, data, 0o644)
	if err != nil {
		return fmt.Errorf("error writing %s: %s", s.filename, err)
	}

	return nil
}
