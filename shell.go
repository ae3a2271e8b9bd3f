package main

import (
	"connect4/agent"
	"connect4/engine"
	"connect4/game"
	"connect4/gamemaster"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const helpText = `commands:
  drop <column>  drop a piece into column 0-6 (a bare number works too)
  board          show the board
  hint           suggest a column
  new            start a new game
  help           show this help
  exit           leave`

type shell struct {
	l *readline.Instance

	newSession func() *gamemaster.Session
	session    *gamemaster.Session
	hint       agent.Strategy
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func newShell(newSession func() *gamemaster.Session) (*shell, error) {
	completer := readline.NewPrefixCompleter(
		readline.PcItem("drop"),
		readline.PcItem("board"),
		readline.PcItem("hint"),
		readline.PcItem("new"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)
	l, err := readline.NewEx(&readline.Config{
		Prompt:              "\033[31mconnect4>\033[0m ",
		HistoryFile:         filepath.Join(os.TempDir(), "connect4_history"),
		AutoComplete:        completer,
		EOFPrompt:           "exit",
		InterruptPrompt:     "^C",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, fmt.Errorf("starting shell: %w", err)
	}
	return &shell{
		l:          l,
		newSession: newSession,
		hint:       agent.NewHeuristic("hint"),
	}, nil
}

func (sh *shell) showMessage(msg string) {
	io.WriteString(sh.l.Stdout(), msg)
	io.WriteString(sh.l.Stdout(), "\n")
}

func (sh *shell) showError(err error) {
	sh.showMessage("error: " + err.Error())
}

func (sh *shell) loop(ctx context.Context) error {
	defer sh.l.Close()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: sh.l.Stderr(), TimeFormat: time.TimeOnly})

	sh.showMessage(helpText)
	if err := sh.start(ctx); err != nil {
		return err
	}
	for {
		line, err := sh.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		fields, err := shellquote.Split(strings.TrimSpace(line))
		if err != nil {
			sh.showError(err)
			continue
		}
		if len(fields) == 0 {
			continue
		}
		quit, err := sh.execute(ctx, fields[0], fields[1:])
		if err != nil {
			sh.showError(err)
		}
		if quit {
			break
		}
	}
	return nil
}

func (sh *shell) execute(ctx context.Context, cmd string, args []string) (bool, error) {
	switch cmd {
	case "drop", "d":
		if len(args) != 1 {
			return false, errors.New("usage: drop <column>")
		}
		column, err := strconv.Atoi(args[0])
		if err != nil {
			return false, fmt.Errorf("column must be a number: %w", err)
		}
		return false, sh.drop(ctx, column)
	case "board", "b":
		sh.showBoard()
	case "hint":
		state := sh.session.Snapshot()
		if state.IsTerminal() {
			return false, gamemaster.ErrGameOver
		}
		sh.showMessage(fmt.Sprintf("try column %d", sh.hint.SelectMove(ctx, state)))
	case "new":
		return false, sh.start(ctx)
	case "help":
		sh.showMessage(helpText)
	case "exit", "quit":
		return true, nil
	default:
		if column, err := strconv.Atoi(cmd); err == nil && len(args) == 0 {
			return false, sh.drop(ctx, column)
		}
		return false, fmt.Errorf("unknown command %q, try help", cmd)
	}
	return false, nil
}

func (sh *shell) start(ctx context.Context) error {
	sh.session = sh.newSession()
	sh.showMessage(fmt.Sprintf("new game against %s, you are player %s (%s)",
		sh.session.Opponent().Name(), sh.session.Human(), piece(sh.session.Human())))
	if !sh.session.HumanToMove() {
		if err := sh.respond(ctx); err != nil {
			return err
		}
	}
	sh.showBoard()
	return nil
}

func (sh *shell) drop(ctx context.Context, column int) error {
	if err := sh.session.Drop(column); err != nil {
		return err
	}
	sh.showUpdates()
	if !sh.session.Snapshot().IsTerminal() {
		if err := sh.respond(ctx); err != nil {
			return err
		}
	}
	sh.showBoard()
	return nil
}

func (sh *shell) respond(ctx context.Context) error {
	inv, err := sh.session.Respond(ctx)
	if err != nil {
		return err
	}
	if inv.Status != engine.Completed {
		sh.showMessage(fmt.Sprintf("%s %s, a fallback move was played", sh.session.Opponent().Name(), inv.Status))
	}
	sh.showUpdates()
	return nil
}

func (sh *shell) showUpdates() {
	for {
		select {
		case u, ok := <-sh.session.Updates():
			if !ok {
				return
			}
			who := sh.session.Opponent().Name()
			if u.Player == sh.session.Human() {
				who = "you"
			}
			sh.showMessage(fmt.Sprintf("%s: column %d", who, u.Column))
		default:
			return
		}
	}
}

func (sh *shell) showBoard() {
	state := sh.session.Snapshot()
	board := state.Board()
	sh.showMessage("\n" + board.String())
	switch state.Status() {
	case game.Won:
		if state.Winner() == sh.session.Human() {
			sh.showMessage("you win! type new to play again")
		} else {
			sh.showMessage(sh.session.Opponent().Name() + " wins. type new to play again")
		}
	case game.Tie:
		sh.showMessage("the board is full, it's a tie. type new to play again")
	}
}

func piece(p game.Player) string {
	if p == game.Player1 {
		return "X"
	}
	return "O"
}
