// Package command parses the text players type: a bare "row,col" or one of a
// few short commands.
package command

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper/internal/mines"
)

var (
	ErrMalformedInput = errors.New("input must look like row,col")
	ErrUnknownCommand = errors.New("unknown command")
)

type Kind int

const (
	Reveal Kind = iota
	Show
	Forfeit
)

func (k Kind) String() string {
	switch k {
	case Reveal:
		return "reveal"
	case Show:
		return "show"
	case Forfeit:
		return "forfeit"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

type Command struct {
	Kind Kind
	At   mines.Coordinate // only for Reveal
}

// Maps known command words to whether they take a coordinate
var commandArgs = map[string]bool{
	"r":       true,
	"reveal":  true,
	"g":       false,
	"show":    false,
	"q":       false,
	"forfeit": false,
}

// ParseCoordinate reads "row,col". Whitespace around either number is
// ignored; range checks are left to the caller.
func ParseCoordinate(s string) (mines.Coordinate, error) {
	rowStr, colStr, found := strings.Cut(s, ",")
	if !found {
		return mines.Coordinate{}, fmt.Errorf("%w: missing comma in %q", ErrMalformedInput, s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rowStr))
	if err != nil {
		return mines.Coordinate{}, fmt.Errorf("%w: row must be an int", ErrMalformedInput)
	}
	col, err := strconv.Atoi(strings.TrimSpace(colStr))
	if err != nil {
		return mines.Coordinate{}, fmt.Errorf("%w: column must be an int", ErrMalformedInput)
	}
	return mines.Coordinate{Row: row, Col: col}, nil
}

func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}, fmt.Errorf("%w: empty input", ErrMalformedInput)
	}

	word, rest, _ := strings.Cut(line, " ")
	takesArg, ok := commandArgs[strings.ToLower(word)]
	if !ok {
		at, err := ParseCoordinate(line)
		if err != nil {
			if !strings.Contains(line, ",") {
				return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, word)
			}
			return Command{}, err
		}
		return Command{Kind: Reveal, At: at}, nil
	}

	rest = strings.TrimSpace(rest)
	if !takesArg {
		if rest != "" {
			return Command{}, fmt.Errorf("%w: %s takes no arguments", ErrMalformedInput, word)
		}
		switch strings.ToLower(word) {
		case "g", "show":
			return Command{Kind: Show}, nil
		default:
			return Command{Kind: Forfeit}, nil
		}
	}

	at, err := ParseCoordinate(rest)
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: Reveal, At: at}, nil
}

// Lines yields the non-empty lines of a message that may batch several
// commands.
func Lines(s string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, "\n")
			piece = strings.TrimSpace(piece)
			if piece == "" {
				continue
			}
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}
