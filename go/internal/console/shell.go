package console

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/scoreboard/go/internal/catalog"
	"github.com/mcdev12/scoreboard/go/internal/models"
	"github.com/mcdev12/scoreboard/go/internal/render"
	"github.com/mcdev12/scoreboard/go/internal/viewer"
)

const boardRows = 20

// Viewer is what the shell drives
type Viewer interface {
	Start(ctx context.Context) error
	SelectSport(ctx context.Context, sportID models.ID) error
	SelectGame(ctx context.Context, gameID models.ID) error
}

// Shell reads commands and turns them into selections.
type Shell struct {
	console *Console
	viewer  Viewer
	sports  *Selector
	games   *Selector
	board   *render.Board
}

func NewShell(console *Console, viewer Viewer, sports, games *Selector, board *render.Board) *Shell {
	return &Shell{
		console: console,
		viewer:  viewer,
		sports:  sports,
		games:   games,
		board:   board,
	}
}

// Run executes commands from in until "quit", end of input or ctx is done.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	s.console.printf("type 'help' for commands\n")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := s.Exec(ctx, line); quit {
				return nil
			}
		}
	}
}

// Exec runs one command line and reports whether the shell should exit.
func (s *Shell) Exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	var err error
	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return true
	case "help":
		s.printHelp()
	case "sports":
		err = s.viewer.Start(ctx)
	case "sport":
		err = s.selectSport(ctx, arg)
	case "game":
		err = s.selectGame(ctx, arg)
	case "clear":
		err = s.viewer.SelectGame(ctx, "")
	case "games":
		s.games.Print()
	case "board":
		s.console.PrintBoard(s.board, boardRows)
	default:
		s.console.printf("unknown command %q\n", fields[0])
	}

	if err != nil && !viewer.IsQuiet(err) {
		log.Debug().Err(err).Str("command", line).Msg("command failed")
	}
	return false
}

func (s *Shell) selectSport(ctx context.Context, arg string) error {
	if arg == "" {
		return s.viewer.SelectSport(ctx, "")
	}
	value, err := s.sports.Resolve(arg)
	if err != nil {
		s.console.printf("%v\n", err)
		return err
	}
	return s.viewer.SelectSport(ctx, models.ID(value))
}

func (s *Shell) selectGame(ctx context.Context, arg string) error {
	if arg == "" {
		return s.viewer.SelectGame(ctx, catalog.NoneSelected)
	}
	value, err := s.games.Resolve(arg)
	if err != nil {
		s.console.printf("%v\n", err)
		return err
	}
	return s.viewer.SelectGame(ctx, models.ID(value))
}

func (s *Shell) printHelp() {
	s.console.printf(`commands:
  sports          reload the sport list
  sport <n|id>    choose a sport (no argument clears it)
  games           show the game list again
  game <n|id>     open a game (no argument clears it)
  clear           close the open game
  board           print both columns
  quit            leave
`)
}
