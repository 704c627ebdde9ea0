// Package terminal is the hot-seat front-end for a single terminal.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/presenter"
)

const (
	colorX      = "#E88388"
	colorO      = "#71BEF2"
	colorNotice = "#DBAB79"

	helpText = `commands:
  start     enter both names and start a new game
  1-9       mark a cell, numbered left to right, top to bottom
  restart   clear the board
  help      show this help
  quit      leave`
)

var ErrInputClosed = errors.New("input closed before both names were entered")

// Terminal renders the game with ANSI styling when the profile allows it.
type Terminal struct {
	out *termenv.Output
}

func New(w io.Writer, color bool) *Terminal {
	profile := termenv.Ascii
	if color {
		profile = termenv.ANSI256
	}

	return &Terminal{
		out: termenv.NewOutput(w, termenv.WithProfile(profile)),
	}
}

func (that *Terminal) Render(view presenter.View) {
	var sb strings.Builder

	sb.WriteString("\n")
	for row := 0; row < 3; row++ {
		cells := make([]string, 0, 3)
		for col := 0; col < 3; col++ {
			cells = append(cells, that.cell(row*3+col, view.Board[row*3+col]))
		}

		sb.WriteString(" " + strings.Join(cells, " | ") + " \n")
		if row < 2 {
			sb.WriteString("---+---+---\n")
		}
	}

	sb.WriteString(that.statusLine(view) + "\n")

	_, _ = fmt.Fprint(that.out, sb.String())
}

func (that *Terminal) Notify(notice presenter.Notice) {
	message := that.out.String(notice.Message).Foreground(that.out.Color(colorNotice)).Bold()
	_, _ = fmt.Fprintln(that.out, message)
}

func (that *Terminal) Prompt(text string) {
	_, _ = fmt.Fprint(that.out, text)
}

func (that *Terminal) cell(index int, mark string) string {
	switch mark {
	case entity.MarkX:
		return that.out.String(mark).Foreground(that.out.Color(colorX)).Bold().String()
	case entity.MarkO:
		return that.out.String(mark).Foreground(that.out.Color(colorO)).Bold().String()
	default:
		return that.out.String(strconv.Itoa(index + 1)).Faint().String()
	}
}

func (that *Terminal) statusLine(view presenter.View) string {
	switch view.Status {
	case entity.StatusOngoing:
		for _, player := range view.Players {
			if player.Marker() == view.Turn {
				return fmt.Sprintf("%s (%s) to move", player.Name(), player.Marker())
			}
		}
	case entity.StatusFinished:
		return "game over, type start to play again"
	}

	return "type start to begin"
}

type events interface {
	Show()
	OnStartClicked(firstName, secondName string)
	OnCellSelected(cell int)
	OnRestartClicked()
}

// Run - reads commands line by line until quit, EOF or ctx is done.
func Run(ctx context.Context, in io.Reader, term *Terminal, game events) error {
	scanner := bufio.NewScanner(in)

	game.Show()
	term.Prompt(helpText + "\n")

	for {
		if err := ctx.Err(); err != nil {
			return nil //nolint: nilerr // cancellation is a normal way to leave
		}

		term.Prompt("> ")
		if !scanner.Scan() {
			return scannerErr(scanner)
		}

		command := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(command) {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "help":
			term.Prompt(helpText + "\n")
		case "restart":
			game.OnRestartClicked()
		case "start":
			firstName, secondName, err := readNames(scanner, term)
			if err != nil {
				return err
			}

			game.OnStartClicked(firstName, secondName)
		default:
			number, err := strconv.Atoi(command)
			if err != nil {
				term.Prompt(fmt.Sprintf("unknown command %q, type help\n", command))
				continue
			}

			game.OnCellSelected(number - 1)
		}
	}
}

func readNames(scanner *bufio.Scanner, term *Terminal) (string, string, error) {
	names := make([]string, 0, 2)

	for _, prompt := range []string{"player 1 (X) name: ", "player 2 (O) name: "} {
		term.Prompt(prompt)
		if !scanner.Scan() {
			if err := scannerErr(scanner); err != nil {
				return "", "", err
			}

			return "", "", ErrInputClosed
		}

		names = append(names, strings.TrimSpace(scanner.Text()))
	}

	return names[0], names[1], nil
}

func scannerErr(scanner *bufio.Scanner) error {
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}
