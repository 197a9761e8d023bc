package game

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samdwyer/valor/internal/world"
)

// ErrQuit ends a session early. End of input and a cancelled context both
// turn into ErrQuit inside the controller.
var ErrQuit = errors.New("quit")

// CommandKind identifies a player command.
type CommandKind int

const (
	CmdSelect CommandKind = iota + 1
	CmdMove
	CmdClear
	CmdAttack
	CmdEnd
	CmdQuit
)

// Command is one parsed player instruction.
type Command struct {
	Kind CommandKind
	N    int // Roster number for select, hero id for move and attack
	Dir  world.Direction
	Pos  world.Position
}

// CommandError is a malformed command. The message is meant for the player.
type CommandError struct {
	Msg string
}

func (e *CommandError) Error() string { return e.Msg }

func invalid(msg string) error {
	return &CommandError{Msg: msg}
}

// Prompt tells an Input what the controller is waiting for.
type Prompt struct {
	State State
	Text  string
}

// Input supplies player commands. Next blocks until a command is available.
// A *CommandError reports input that could not be parsed; io.EOF reports
// that no more input will come.
type Input interface {
	Next(ctx context.Context, p Prompt) (Command, error)
}

// ParseCommand parses one line of player input. A bare number selects a
// roster entry.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, invalid("Unknown command.")
	}

	verb := strings.ToLower(fields[0])
	if n, err := strconv.Atoi(verb); err == nil && len(fields) == 1 {
		return Command{Kind: CmdSelect, N: n}, nil
	}

	switch verb {
	case "select":
		if len(fields) != 2 {
			return Command{}, invalid("Usage: select <number>")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return Command{}, invalid("Invalid input.")
		}
		return Command{Kind: CmdSelect, N: n}, nil

	case "move":
		if len(fields) != 3 {
			return Command{}, invalid("Usage: move <id> <direction>")
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			return Command{}, invalid("Hero id must be numeric.")
		}
		dir, err := world.ParseDirection(fields[2])
		if err != nil {
			return Command{}, invalid("Invalid direction.")
		}
		return Command{Kind: CmdMove, N: id, Dir: dir}, nil

	case "clear":
		if len(fields) != 3 {
			return Command{}, invalid("Usage: clear <row> <col>")
		}
		row, errRow := strconv.Atoi(fields[1])
		col, errCol := strconv.Atoi(fields[2])
		if errRow != nil || errCol != nil {
			return Command{}, invalid("Row/column must be numbers.")
		}
		return Command{Kind: CmdClear, Pos: world.Position{Row: row, Col: col}}, nil

	case "attack":
		if len(fields) != 2 {
			return Command{}, invalid("Usage: attack <id>")
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			return Command{}, invalid("Hero id must be numeric.")
		}
		return Command{Kind: CmdAttack, N: id}, nil

	case "end":
		return Command{Kind: CmdEnd}, nil

	case "quit", "exit", "q":
		return Command{Kind: CmdQuit}, nil
	}
	return Command{}, invalid("Unknown command.")
}

// LineInput reads one command per line, writing the prompt before each read.
// Blank lines are skipped.
type LineInput struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewLineInput creates a line reader over r that prompts on out.
func NewLineInput(r io.Reader, out io.Writer) *LineInput {
	return &LineInput{scanner: bufio.NewScanner(r), out: out}
}

// Next prompts and parses the next non-blank line. A read already in
// progress is not interrupted by ctx; cancellation is seen before each read.
func (in *LineInput) Next(ctx context.Context, p Prompt) (Command, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Command{}, err
		}
		fmt.Fprint(in.out, p.Text)
		if !in.scanner.Scan() {
			if err := in.scanner.Err(); err != nil {
				return Command{}, fmt.Errorf("read command: %w", err)
			}
			return Command{}, io.EOF
		}
		line := strings.TrimSpace(in.scanner.Text())
		if line == "" {
			continue
		}
		return ParseCommand(line)
	}
}
