package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// Record is the outcome of one finished game.
type Record struct {
	RecordID  int64     `json:"record_id" db:"record_id"`
	Username  *string   `json:"username" db:"username"`
	Size      int       `json:"size" db:"size"`
	MineCount int       `json:"mine_count" db:"mine_count"`
	Won       bool      `json:"won" db:"won"`
	Forfeited bool      `json:"forfeited" db:"forfeited"`
	Moves     int       `json:"moves" db:"moves"`
	Cleared   int       `json:"cleared" db:"cleared"`
	EndedAt   time.Time `json:"ended_at" db:"ended_at"`
}

type CreateRecordParams struct {
	PlayerID  *int64
	Username  *string // stores without a player table keep the name inline
	Size      int
	MineCount int
	Won       bool
	Forfeited bool
	Moves     int
	Cleared   int
	EndedAt   time.Time
}

func (p CreateRecordParams) Args() pgx.NamedArgs {
	return pgx.NamedArgs{
		"player_id":  p.PlayerID,
		"username":   p.Username,
		"size":       p.Size,
		"mine_count": p.MineCount,
		"won":        p.Won,
		"forfeited":  p.Forfeited,
		"moves":      p.Moves,
		"cleared":    p.Cleared,
		"ended_at":   p.EndedAt,
	}
}

type RecordFilter struct {
	Username  *string
	Size      *int
	MineCount *int
	Won       *bool
	Limit     int
}

const DefaultRecordLimit = 100

func (f RecordFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.Size != nil {
		clauses = append(clauses, "size = @size")
		args["size"] = *f.Size
	}
	if f.MineCount != nil {
		clauses = append(clauses, "mine_count = @mine_count")
		args["mine_count"] = *f.MineCount
	}
	if f.Won != nil {
		clauses = append(clauses, "won = @won")
		args["won"] = *f.Won
	}
	return strings.Join(clauses, " AND "), args
}

func (f RecordFilter) limit() int {
	if f.Limit <= 0 {
		return DefaultRecordLimit
	}
	return f.Limit
}

func (q Queries) CreateRecord(ctx context.Context, params CreateRecordParams) error {
	_, err := q.db.Exec(
		ctx,
		`INSERT INTO game_record (
			player_id, size, mine_count, won, forfeited, moves, cleared, ended_at
		)
		VALUES (
			@player_id, @size, @mine_count, @won, @forfeited, @moves, @cleared, @ended_at
		);`,
		params.Args(),
	)
	return err
}

func (q Queries) GetRecords(ctx context.Context, filter RecordFilter) ([]Record, error) {
	query := `
	SELECT
		record_id,
		username,
		size,
		mine_count,
		won,
		forfeited,
		moves,
		cleared,
		ended_at
	FROM game_record
		LEFT OUTER JOIN player USING (player_id)
	`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " WHERE " + whereClause
	}

	query += " ORDER BY ended_at DESC, record_id DESC LIMIT @limit;"
	args["limit"] = filter.limit()

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Record])
}
