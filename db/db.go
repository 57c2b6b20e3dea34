package db

import (
	"database/sql"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/dasdy/nuhxboard/logging"
	"github.com/dasdy/nuhxboard/model"

	_ "github.com/mattn/go-sqlite3"
)

var logCtx = logging.PackageCtx("db")

type SQLiteStorage struct {
	db *sql.DB
}

func InitDBStorage(db *sql.DB) error {
	sqlStmt := `
	create table if not exists keyevents(code int, pressed bool, ts datetime);`

	_, err := db.Exec(sqlStmt)
	if err != nil {
		return fmt.Errorf("could not create keyevents table: %w", err)
	}

	sqlStmt = `create index if not exists keyevents_tsix on keyevents (ts ASC);`

	_, err = db.Exec(sqlStmt)
	if err != nil {
		return fmt.Errorf("could not create keyevents index: %w", err)
	}

	return nil
}

func NewStorageFromConnection(conn *sql.DB) (*SQLiteStorage, error) {
	if err := InitDBStorage(conn); err != nil {
		return nil, err
	}

	return &SQLiteStorage{db: conn}, nil
}

func NewStorageFromPath(path string) (*SQLiteStorage, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s as sqlite file: %w", path, err)
	}

	// :memory: databases are per connection
	conn.SetMaxOpenConns(1)

	storage, err := NewStorageFromConnection(conn)
	if err != nil {
		conn.Close()

		return nil, err
	}

	slog.InfoContext(logCtx, "Opened event storage", "path", path)

	return storage, nil
}

func (s *SQLiteStorage) Store(event *model.KeyEvent) error {
	return s.StoreAt(event, time.Now())
}

func (s *SQLiteStorage) StoreAt(event *model.KeyEvent, ts time.Time) error {
	_, err := s.db.Exec(`insert into keyevents(code, pressed, ts) values(?, ?, ?)`,
		event.Code, event.Pressed, ts.UTC())
	if err != nil {
		return fmt.Errorf("could not store key event: %w", err)
	}

	return nil
}

func (s *SQLiteStorage) Count() (int, error) {
	var count int

	if err := s.db.QueryRow(`select count(*) from keyevents`).Scan(&count); err != nil {
		return 0, fmt.Errorf("could not count key events: %w", err)
	}

	return count, nil
}

// AllIterator yields every stored event in timestamp order.
// Row errors stop the iteration and are logged.
func (s *SQLiteStorage) AllIterator() (iter.Seq[model.KeyEventWithTimestamp], error) {
	rows, err := s.db.Query(`select code, pressed, ts from keyevents order by ts, rowid`)
	if err != nil {
		return nil, fmt.Errorf("could not query key events: %w", err)
	}

	return func(yield func(model.KeyEventWithTimestamp) bool) {
		defer rows.Close()

		for rows.Next() {
			var item model.KeyEventWithTimestamp

			if err := rows.Scan(&item.Code, &item.Pressed, &item.Timestamp); err != nil {
				slog.ErrorContext(logCtx, "Could not scan key event", "error", err)

				return
			}

			if !yield(item) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			slog.ErrorContext(logCtx, "Key event iteration failed", "error", err)
		}
	}, nil
}

func (s *SQLiteStorage) Close() {
	if err := s.db.Close(); err != nil {
		slog.ErrorContext(logCtx, "Could not close storage", "error", err)
	}
}
