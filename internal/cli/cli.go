// FILE: internal/cli/cli.go
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"chessrules/internal/board"
	"chessrules/internal/core"
	"chessrules/internal/game"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdNew
	CmdMove
	CmdMoves
	CmdHistory
	CmdCaptured
	CmdColor
	CmdCoords
	CmdStats
	CmdHelp
	CmdQuit
	CmdUnknown
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

type ColorTheme string

const (
	ThemeOff   ColorTheme = "off"
	ThemeBrown ColorTheme = "brown"
	ThemeGreen ColorTheme = "green"
	ThemeGray  ColorTheme = "gray"
)

type themeColors struct {
	lightBg string
	darkBg  string
	mark    string
	white   string
	black   string
	reset   string
}

var themes = map[ColorTheme]themeColors{
	ThemeOff: {},
	ThemeBrown: {
		lightBg: "\033[48;5;230m", // Beige
		darkBg:  "\033[48;5;94m",  // Brown
		mark:    "\033[48;5;179m",
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGreen: {
		lightBg: "\033[48;5;157m", // Light green
		darkBg:  "\033[48;5;22m",  // Dark green
		mark:    "\033[48;5;185m",
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGray: {
		lightBg: "\033[48;5;251m", // Light gray
		darkBg:  "\033[48;5;240m", // Dark gray
		mark:    "\033[48;5;110m",
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
}

// ParseTheme validates a theme name
func ParseTheme(name string) (ColorTheme, error) {
	theme := ColorTheme(strings.ToLower(name))
	if _, ok := themes[theme]; !ok {
		return "", fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", name)
	}
	return theme, nil
}

// CLI renders games as text and reads commands from a LineReader
type CLI struct {
	input  LineReader
	output io.Writer
	theme  ColorTheme
	coords bool

	errColor  *color.Color
	infoColor *color.Color
	overColor *color.Color
}

func New(input LineReader, output io.Writer) *CLI {
	return &CLI{
		input:     input,
		output:    output,
		theme:     ThemeOff,
		coords:    true,
		errColor:  color.New(color.FgRed),
		infoColor: color.New(color.FgCyan),
		overColor: color.New(color.FgYellow, color.Bold),
	}
}

// GetCommand reads and parses one line. EOF is reported as CmdQuit.
func (c *CLI) GetCommand(prompt string) (*Command, error) {
	c.input.SetPrompt(prompt)
	line, err := c.input.Readline()
	if err == io.EOF {
		return &Command{Type: CmdQuit}, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseCommand(line), nil
}

// ParseCommand recognizes "e2e4", "e2 e4", and the named commands
func ParseCommand(input string) *Command {
	input = strings.TrimSpace(input)
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{Type: CmdNone}
	}

	// arguments keep their case so game labels survive
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "new":
		return &Command{Type: CmdNew, Args: args, Raw: input}
	case "moves":
		return &Command{Type: CmdMoves, Args: args, Raw: input}
	case "history":
		return &Command{Type: CmdHistory, Raw: input}
	case "captured":
		return &Command{Type: CmdCaptured, Raw: input}
	case "color":
		return &Command{Type: CmdColor, Args: args, Raw: input}
	case "coords":
		return &Command{Type: CmdCoords, Raw: input}
	case "stats":
		return &Command{Type: CmdStats, Raw: input}
	case "help", "?":
		return &Command{Type: CmdHelp, Raw: input}
	case "quit", "exit":
		return &Command{Type: CmdQuit, Raw: input}
	}

	switch {
	case len(parts) == 1 && len(cmd) == 4:
		return &Command{Type: CmdMove, Args: []string{cmd[:2], cmd[2:]}, Raw: input}
	case len(parts) == 1 && len(cmd) == 5 && cmd[4] == 'q':
		// queen suffix is accepted since promotion is always to a queen
		return &Command{Type: CmdMove, Args: []string{cmd[:2], cmd[2:4]}, Raw: input}
	case len(parts) == 2 && len(parts[0]) == 2 && len(parts[1]) == 2:
		return &Command{Type: CmdMove, Args: []string{cmd, strings.ToLower(parts[1])}, Raw: input}
	}
	return &Command{Type: CmdUnknown, Args: parts, Raw: input}
}

func (c *CLI) SetTheme(theme ColorTheme) error {
	if _, ok := themes[theme]; !ok {
		return fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", theme)
	}
	c.theme = theme
	return nil
}

func (c *CLI) Theme() ColorTheme {
	return c.theme
}

// ToggleCoords flips the file and rank labels around the board
func (c *CLI) ToggleCoords() bool {
	c.coords = !c.coords
	return c.coords
}

func (c *CLI) Coords() bool {
	return c.coords
}

func (c *CLI) SetCoords(on bool) {
	c.coords = on
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowInfo(msg string) {
	c.infoColor.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	c.errColor.Fprintf(c.output, "Error: %v\n", err)
}

// DisplayBoard draws the position; marked squares get the theme's highlight
// or a '*' when colors are off
func (c *CLI) DisplayBoard(s *game.Snapshot, marked ...board.Position) {
	theme := themes[c.theme]
	marks := make(map[board.Position]bool, len(marked))
	for _, p := range marked {
		marks[p] = true
	}

	var sb strings.Builder
	if c.coords {
		sb.WriteString("\n  a b c d e f g h\n")
	} else {
		sb.WriteString("\n")
	}

	for r := 0; r < board.Rows; r++ {
		if c.coords {
			sb.WriteString(fmt.Sprintf("%d ", board.Rows-r))
		}
		for f := 0; f < board.Cols; f++ {
			pos := board.Pos(r, f)
			sym := s.At(pos).Symbol()

			if c.theme == ThemeOff {
				switch {
				case sym != 0:
					sb.WriteString(fmt.Sprintf("%c ", sym))
				case marks[pos]:
					sb.WriteString("* ")
				default:
					sb.WriteString(". ")
				}
				continue
			}

			bg := theme.darkBg
			if (r+f)%2 == 0 {
				bg = theme.lightBg
			}
			if marks[pos] {
				bg = theme.mark
			}
			if sym == 0 {
				sb.WriteString(fmt.Sprintf("%s  %s", bg, theme.reset))
				continue
			}
			fg := theme.black
			if s.At(pos).Color == core.ColorWhite {
				fg = theme.white
			}
			sb.WriteString(fmt.Sprintf("%s%s%c %s", bg, fg, sym, theme.reset))
		}
		if c.coords {
			sb.WriteString(fmt.Sprintf(" %d", board.Rows-r))
		}
		sb.WriteString("\n")
	}
	if c.coords {
		sb.WriteString("  a b c d e f g h\n")
	}

	c.ShowMessage(sb.String())
	if s.Check && !s.State.IsTerminal() {
		c.overColor.Fprintf(c.output, "%s is in check\n", s.ToMove.Name())
	}
}

// Prompt shows whose turn it is in an ongoing game
func Prompt(s *game.Snapshot) string {
	if s == nil || s.State.IsTerminal() {
		return "> "
	}
	return fmt.Sprintf("[%s %d]> ", s.ToMove, s.Turn)
}

func (c *CLI) ShowHelp() {
	help := `Commands:
  new [label]      - Start a new game
  <from><to>       - Make a move (e.g., e2e4, or e2 e4)
  moves <square>   - Show where the piece on a square can go
  history          - Show game move history
  captured         - List captured pieces
  color <theme>    - Set board color theme (off|brown|green|gray)
  coords           - Toggle board coordinates
  stats            - Show finished game counts
  quit/exit        - Exit the program
  help/?           - Show this help message

Pawns reaching the last rank always become queens.`

	c.ShowMessage(help)
}

func (c *CLI) ShowWelcome() {
	c.ShowInfo("Welcome to Chess!")
	c.ShowMessage("Commands: new, <move>, moves <sq>, history, captured, color, coords, stats, help/?, quit/exit")
	c.ShowMessage("")
}

func (c *CLI) ShowGameHistory(s *game.Snapshot) {
	moves := s.Moves()
	for i := 0; i < len(moves); i += 2 {
		moveNum := i/2 + 1
		white := moves[i]
		if i+1 < len(moves) {
			c.ShowMessage(fmt.Sprintf("%d. %s | %s", moveNum, white, moves[i+1]))
		} else {
			c.ShowMessage(fmt.Sprintf("%d. %s | ...", moveNum, white))
		}
	}
	if len(moves) == 0 {
		c.ShowMessage("No moves yet")
	}
	c.ShowMessage(fmt.Sprintf("Game state: %s", s.State))
}

func (c *CLI) ShowCaptured(s *game.Snapshot) {
	for _, col := range []core.Color{core.ColorWhite, core.ColorBlack} {
		names := make([]string, 0, len(s.Captured[col]))
		for _, k := range s.Captured[col] {
			names = append(names, k.String())
		}
		list := "none"
		if len(names) > 0 {
			list = strings.Join(names, ", ")
		}
		c.ShowMessage(fmt.Sprintf("%s lost: %s", col.Name(), list))
	}
}

// ShowMove prints the last ply with its special-move notes
func (c *CLI) ShowMove(p game.Ply) {
	var notes []string
	if p.Captured != 0 {
		notes = append(notes, "takes "+p.Captured.String())
	}
	if p.Castle {
		notes = append(notes, "castles")
	}
	if p.EnPassant {
		notes = append(notes, "en passant")
	}
	if p.Promotion {
		notes = append(notes, "promotes to queen")
	}
	if p.Check {
		notes = append(notes, "check")
	}
	msg := fmt.Sprintf("%s %s: %s", p.Color.Name(), p.Kind, p.Notation())
	if len(notes) > 0 {
		msg += " (" + strings.Join(notes, ", ") + ")"
	}
	c.ShowMessage(msg)
}

func (c *CLI) ShowDestinations(from board.Position, dests []board.Position) {
	if len(dests) == 0 {
		c.ShowMessage(fmt.Sprintf("%s has no legal moves", from.Square()))
		return
	}
	squares := make([]string, len(dests))
	for i, d := range dests {
		squares[i] = d.Square()
	}
	c.ShowMessage(fmt.Sprintf("%s: %s", from.Square(), strings.Join(squares, " ")))
}

func (c *CLI) ShowGameOver(state core.State) {
	c.overColor.Fprintf(c.output, "\nGame Over: %s\n", state)
	c.ShowMessage("Start a new game with 'new'.")
}
