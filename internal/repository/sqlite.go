package repository

import (
	"context"
	"database/sql"
	"sync"
)

// SQLiteRecords keeps finished games in a local SQLite file. It needs a
// database/sql driver registered as "sqlite3".
type SQLiteRecords struct {
	mu sync.Mutex
	db *sql.DB
}

func NewSQLiteRecords(db *sql.DB) (*SQLiteRecords, error) {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS game_record (
	record_id	INTEGER PRIMARY KEY AUTOINCREMENT,
	username	TEXT,
	size		INTEGER NOT NULL,
	mine_count	INTEGER NOT NULL,
	won			BOOLEAN NOT NULL,
	forfeited	BOOLEAN NOT NULL DEFAULT FALSE,
	moves		INTEGER NOT NULL,
	cleared		INTEGER NOT NULL,
	ended_at	TIMESTAMP NOT NULL
);`)
	if err != nil {
		return nil, err
	}
	return &SQLiteRecords{db: db}, nil
}

func (s *SQLiteRecords) CreateRecord(ctx context.Context, params CreateRecordParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
INSERT INTO game_record (
	username, size, mine_count, won, forfeited, moves, cleared, ended_at
)
VALUES (
	@username, @size, @mine_count, @won, @forfeited, @moves, @cleared, @ended_at
);`,
		sql.Named("username", params.Username),
		sql.Named("size", params.Size),
		sql.Named("mine_count", params.MineCount),
		sql.Named("won", params.Won),
		sql.Named("forfeited", params.Forfeited),
		sql.Named("moves", params.Moves),
		sql.Named("cleared", params.Cleared),
		sql.Named("ended_at", params.EndedAt.UTC()),
	)
	return err
}

func (s *SQLiteRecords) GetRecords(ctx context.Context, filter RecordFilter) ([]Record, error) {
	query := `
SELECT record_id, username, size, mine_count, won, forfeited, moves, cleared, ended_at
FROM game_record`

	whereClause, named := filter.WhereClause()
	if whereClause != "" {
		query += " WHERE " + whereClause
	}
	query += " ORDER BY ended_at DESC, record_id DESC LIMIT @limit;"

	args := make([]any, 0, len(named)+1)
	for name, value := range named {
		args = append(args, sql.Named(name, value))
	}
	args = append(args, sql.Named("limit", filter.limit()))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var r Record
		if err := rows.Scan(
			&r.RecordID, &r.Username, &r.Size, &r.MineCount,
			&r.Won, &r.Forfeited, &r.Moves, &r.Cleared, &r.EndedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
