package ansii

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

type ANSI string

const (
	reset       ANSI = "\033[0m"
	bold        ANSI = "\033[1m"
	clearScreen ANSI = "\033[2J"
	home        ANSI = "\033[H"
	hideCursor  ANSI = "\033[?25l"
	showCursor  ANSI = "\033[?25h"
)

type style struct {
	Reset ANSI
	Bold  ANSI
}

type screen struct {
	ClearScreen ANSI
	Home        ANSI
	HideCursor  ANSI
	ShowCursor  ANSI
}

var (
	Styles = style{Reset: reset, Bold: bold}
	Screen = screen{ClearScreen: clearScreen, Home: home, HideCursor: hideCursor, ShowCursor: showCursor}
)

// PlaceCursor moves the cursor to column X, row Y. Both start at 1.
func (s screen) PlaceCursor(X, Y int) ANSI {
	return ANSI(fmt.Sprintf("\033[%d;%dH", Y, X))
}

// Title sets the terminal window title.
func (s screen) Title(title string) ANSI {
	return ANSI(fmt.Sprintf("\033]0;%s\007", title))
}

// Foreground and Background use 24-bit colour.
func Foreground(r, g, b uint8) ANSI {
	return ANSI(fmt.Sprintf("\033[38;2;%d;%d;%dm", r, g, b))
}

func Background(r, g, b uint8) ANSI {
	return ANSI(fmt.Sprintf("\033[48;2;%d;%d;%dm", r, g, b))
}

func GetTermSize() (width int, height int, err error) {
	fd := int(os.Stdout.Fd())
	width, height, err = term.GetSize(fd)
	if err != nil {
		return 0, 0, fmt.Errorf("get terminal size: %w", err)
	}
	return width, height, nil
}

func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func MakeTermRaw() (*term.State, error) {
	fd := int(os.Stdin.Fd())
	prev, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("make terminal raw: %w", err)
	}
	return prev, nil
}

func RestoreTerm(prev *term.State) error {
	fd := int(os.Stdin.Fd())
	return term.Restore(fd, prev)
}
