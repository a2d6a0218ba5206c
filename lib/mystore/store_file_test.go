package mystore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

type record struct {
	UID   string
	Label string
	Count int
}

var (
	rec = record{UID: "123", Label: "noodles", Count: 2}
)

func TestFileStore(t *testing.T) {
	c := context.TODO()
	dir := t.TempDir()

	fs, cleanup, err := newFileStore[record](c, dir)
	assert.NoError(t, err)
	defer cleanup()

	t.Run("Get not found", func(t *testing.T) {
		_, found, err := fs.Get(c, rec.UID)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Put", func(t *testing.T) {
		err = fs.Put(c, rec.UID, rec)
		assert.NoError(t, err)
	})

	t.Run("Get found", func(t *testing.T) {
		got, found, err := fs.Get(c, rec.UID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, rec, got)
	})

	t.Run("Survives a new store instance", func(t *testing.T) {
		reopened, cleanup2, err := newFileStore[record](c, dir)
		assert.NoError(t, err)
		defer cleanup2()

		got, found, err := reopened.Get(c, rec.UID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, rec, got)
	})

	t.Run("Delete erases from disk", func(t *testing.T) {
		err = fs.Delete(c, rec.UID)
		assert.NoError(t, err)

		reopened, cleanup2, err := newFileStore[record](c, dir)
		assert.NoError(t, err)
		defer cleanup2()

		_, found, err := reopened.Get(c, rec.UID)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Query returns the full dataset regardless of filters", func(t *testing.T) {
		err = fs.Put(c, rec.UID, rec)
		assert.NoError(t, err)

		all, err := fs.Query(c, []Filter{{Field: "Label", Compare: "=", Value: "no-such-label"}}, "Label")
		assert.NoError(t, err)
		assert.Equal(t, []record{rec}, all)
	})

	t.Run("Corrupt file degrades to empty", func(t *testing.T) {
		err = os.WriteFile(filepath.Join(dir, "record.json"), []byte("{not json"), 0o644)
		assert.NoError(t, err)

		all, err := fs.List(c)
		assert.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestInMemoryStore(t *testing.T) {
	c := context.TODO()

	ms, cleanup, err := newInMemoryStore[record](c)
	assert.NoError(t, err)
	defer cleanup()

	t.Run("Put get list", func(t *testing.T) {
		err = ms.Put(c, rec.UID, rec)
		assert.NoError(t, err)

		got, found, err := ms.Get(c, rec.UID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, rec, got)

		all, err := ms.List(c)
		assert.NoError(t, err)
		assert.Equal(t, []record{rec}, all)
	})

	t.Run("Delete", func(t *testing.T) {
		err = ms.Delete(c, rec.UID)
		assert.NoError(t, err)

		_, found, err := ms.Get(c, rec.UID)
		assert.NoError(t, err)
		assert.False(t, found)
	})
}
