package db_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/dasdy/nuhxboard/db"
	"github.com/dasdy/nuhxboard/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, storage db.Storage) []model.KeyEventWithTimestamp {
	t.Helper()

	iterator, err := storage.AllIterator()
	require.NoError(t, err)

	result := make([]model.KeyEventWithTimestamp, 0)
	for item := range iterator {
		result = append(result, item)
	}

	return result
}

func TestConnectToMemoryDB(t *testing.T) {
	t.Run("starts empty", func(t *testing.T) {
		storage, err := db.NewStorageFromPath(":memory:")
		require.NoError(t, err)

		defer storage.Close()

		count, err := storage.Count()
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Empty(t, collect(t, storage))
	})

	t.Run("should insert and iterate in order", func(t *testing.T) {
		storage, err := db.NewStorageFromPath(":memory:")
		require.NoError(t, err)

		defer storage.Close()

		start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		events := []model.KeyEvent{
			{Code: 38, Pressed: true},
			{Code: 39, Pressed: true},
			{Code: 38, Pressed: false},
			{Code: 39, Pressed: false},
		}

		for i, e := range events {
			require.NoError(t, storage.StoreAt(&e, start.Add(time.Duration(i)*50*time.Millisecond)))
		}

		count, err := storage.Count()
		require.NoError(t, err)
		assert.Equal(t, 4, count)

		items := collect(t, storage)
		require.Len(t, items, 4)

		for i, item := range items {
			assert.Equal(t, events[i], item.KeyEvent)
			assert.True(t, item.Timestamp.Equal(start.Add(time.Duration(i)*50*time.Millisecond)))
		}
	})

	t.Run("iteration can stop early", func(t *testing.T) {
		storage, err := db.NewStorageFromPath(":memory:")
		require.NoError(t, err)

		defer storage.Close()

		for i := range 3 {
			require.NoError(t, storage.Store(&model.KeyEvent{Code: uint32(i), Pressed: true}))
		}

		iterator, err := storage.AllIterator()
		require.NoError(t, err)

		seen := 0
		for range iterator {
			seen++

			break
		}

		assert.Equal(t, 1, seen)

		// connection is released after early exit
		require.NoError(t, storage.Store(&model.KeyEvent{Code: 9}))
	})
}

func TestNewStorageFromConnection(t *testing.T) {
	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)

	conn.SetMaxOpenConns(1)

	storage, err := db.NewStorageFromConnection(conn)
	require.NoError(t, err)

	defer storage.Close()

	_, err = conn.Exec(`insert into keyevents(code, pressed, ts) values(?, ?, ?)`, 5, true, time.Now())
	require.NoError(t, err)

	items := collect(t, storage)
	require.Len(t, items, 1)
	assert.Equal(t, model.KeyEvent{Code: 5, Pressed: true}, items[0].KeyEvent)
}
