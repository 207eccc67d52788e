package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/command"
	"github.com/vancomm/minesweeper/internal/render"
	"github.com/vancomm/minesweeper/internal/session"
)

const (
	prompt       = "Where would you like to dig? Input as row,col: "
	invalidInput = "Invalid location. Try again."
	victory      = "CONGRATULATIONS!!!! YOU ARE VICTORIOUS!"
	defeat       = "SORRY GAME OVER :("
)

var errInputClosed = errors.New("input closed before the game ended")

type terminal struct {
	in  *bufio.Scanner
	out io.Writer
	log *logrus.Logger
}

func newTerminal(in io.Reader, out io.Writer, log *logrus.Logger) *terminal {
	return &terminal{
		in:  bufio.NewScanner(in),
		out: out,
		log: log,
	}
}

// play asks for cells to dig until the game is over, then prints the verdict
// and the uncovered board.
func (t *terminal) play(game *session.Game) (session.Status, error) {
	for {
		snap := game.Snapshot()
		if snap.Status.Over() {
			return snap.Status, t.finish(game, snap)
		}

		if err := render.Text(t.out, snap.Grid, snap.Size); err != nil {
			return snap.Status, err
		}
		fmt.Fprint(t.out, prompt)

		if !t.in.Scan() {
			if err := t.in.Err(); err != nil {
				return snap.Status, err
			}
			fmt.Fprintln(t.out)
			return snap.Status, errInputClosed
		}
		line := t.in.Text()

		cmd, err := command.Parse(line)
		if err != nil {
			t.log.WithError(err).WithField("input", line).Debug("rejected input")
			fmt.Fprintln(t.out, invalidInput)
			continue
		}

		switch cmd.Kind {
		case command.Show:
		case command.Forfeit:
			if _, err := game.Forfeit(); err != nil {
				return snap.Status, err
			}
			t.log.Info("player forfeited")
		case command.Reveal:
			if !game.InBounds(cmd.At) {
				t.log.WithField("at", cmd.At.String()).Debug("location out of range")
				fmt.Fprintln(t.out, invalidInput)
				continue
			}
			status, err := game.Reveal(cmd.At)
			if err != nil {
				return snap.Status, err
			}
			t.log.WithFields(logrus.Fields{
				"at":     cmd.At.String(),
				"status": status.String(),
			}).Debug("revealed cell")
		}
	}
}

func (t *terminal) finish(game *session.Game, snap session.Snapshot) error {
	if snap.Status == session.Won {
		fmt.Fprintln(t.out, victory)
	} else {
		fmt.Fprintln(t.out, defeat)
	}
	solution, err := game.Solution()
	if err != nil {
		return err
	}
	return render.Text(t.out, solution, snap.Size)
}
