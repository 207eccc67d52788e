package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/vancomm/minesweeper/internal/repository"
	"github.com/vancomm/minesweeper/internal/session"
)

type recordStore interface {
	session.Recorder
	GetRecords(ctx context.Context, filter repository.RecordFilter) ([]repository.Record, error)
}

func recordGame(ctx context.Context, store session.Recorder, game *session.Game, name string) error {
	snap := game.Snapshot()
	params := repository.CreateRecordParams{
		Size:      snap.Size,
		MineCount: snap.MineCount,
		Won:       snap.Status == session.Won,
		Forfeited: snap.Forfeited,
		Moves:     snap.Moves,
		Cleared:   snap.Cleared,
		EndedAt:   time.Now().UTC(),
	}
	if name != "" {
		params.Username = &name
	}
	return store.CreateRecord(ctx, params)
}

func listRecords(ctx context.Context, w io.Writer, store recordStore, filter repository.RecordFilter) error {
	records, err := store.GetRecords(ctx, filter)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "no games recorded yet")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ENDED\tPLAYER\tSIZE\tMINES\tRESULT\tMOVES\tCLEARED")
	for _, r := range records {
		player := "-"
		if r.Username != nil {
			player = *r.Username
		}
		result := "lost"
		switch {
		case r.Won:
			result = "won"
		case r.Forfeited:
			result = "forfeited"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%d\t%d\n",
			r.EndedAt.Local().Format(time.DateTime),
			player, r.Size, r.MineCount, result, r.Moves, r.Cleared,
		)
	}
	return tw.Flush()
}
