// FILE: internal/transport/cli/handler.go
package cli

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"chessrules/internal/board"
	"chessrules/internal/cli"
	"chessrules/internal/game"
	"chessrules/internal/prefs"
	"chessrules/internal/service"
)

type CLIHandler struct {
	svc    *service.Service
	view   *cli.CLI
	prefs  *prefs.Store // nil when preferences are not persisted
	gameID string
}

func New(svc *service.Service, view *cli.CLI, store *prefs.Store) *CLIHandler {
	return &CLIHandler{
		svc:   svc,
		view:  view,
		prefs: store,
	}
}

// Run is the main loop; it returns on quit or end of input
func (h *CLIHandler) Run() {
	h.view.ShowWelcome()
	for {
		cmd, err := h.view.GetCommand(h.prompt())
		if err != nil {
			break
		}
		if !h.ProcessCommand(cmd) {
			break
		}
	}
}

func (h *CLIHandler) prompt() string {
	if h.gameID == "" {
		return "> "
	}
	v, err := h.svc.GetGame(h.gameID)
	if err != nil {
		return "> "
	}
	return cli.Prompt(&v.Snapshot)
}

// ProcessCommand handles one command; false means exit
func (h *CLIHandler) ProcessCommand(cmd *cli.Command) bool {
	switch cmd.Type {
	case cli.CmdQuit:
		return false

	case cli.CmdNone:

	case cli.CmdNew:
		h.handleNewGame(strings.Join(cmd.Args, " "))

	case cli.CmdMove:
		h.handleMove(cmd.Args[0], cmd.Args[1])

	case cli.CmdMoves:
		if len(cmd.Args) != 1 {
			h.view.ShowMessage("Usage: moves <square>")
			return true
		}
		h.handleDestinations(cmd.Args[0])

	case cli.CmdHistory:
		if v, ok := h.current(); ok {
			h.view.ShowGameHistory(&v.Snapshot)
		}

	case cli.CmdCaptured:
		if v, ok := h.current(); ok {
			h.view.ShowCaptured(&v.Snapshot)
		}

	case cli.CmdColor:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: color <off|brown|green|gray>")
			return true
		}
		theme, err := cli.ParseTheme(cmd.Args[0])
		if err != nil {
			h.view.ShowError(err)
			return true
		}
		if err := h.view.SetTheme(theme); err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowMessage(fmt.Sprintf("Color theme set to: %s", theme))
		h.savePrefs()
		h.redraw()

	case cli.CmdCoords:
		on := h.view.ToggleCoords()
		h.view.ShowMessage(fmt.Sprintf("Coordinates: %t", on))
		h.savePrefs()

	case cli.CmdStats:
		h.showStats()

	case cli.CmdHelp:
		h.view.ShowHelp()

	default:
		h.view.ShowMessage(fmt.Sprintf("Unknown command: %s (type 'help')", cmd.Raw))
	}

	return true
}

func (h *CLIHandler) current() (service.GameView, bool) {
	if h.gameID == "" {
		h.view.ShowMessage("No active game. Use 'new'.")
		return service.GameView{}, false
	}
	v, err := h.svc.GetGame(h.gameID)
	if err != nil {
		h.view.ShowError(err)
		h.gameID = ""
		return service.GameView{}, false
	}
	return v, true
}

func (h *CLIHandler) redraw() {
	if h.gameID == "" {
		return
	}
	if v, err := h.svc.GetGame(h.gameID); err == nil {
		h.view.DisplayBoard(&v.Snapshot)
	}
}

func (h *CLIHandler) handleNewGame(label string) {
	if h.gameID != "" {
		h.svc.DeleteGame(h.gameID)
	}
	v, err := h.svc.CreateGame(label)
	if err != nil {
		h.view.ShowError(fmt.Errorf("could not start the game: %w", err))
		return
	}
	h.gameID = v.ID
	h.view.ShowMessage("Game started.")
	h.view.DisplayBoard(&v.Snapshot)
}

func (h *CLIHandler) handleMove(fromSq, toSq string) {
	if h.gameID == "" {
		h.view.ShowMessage("No active game. Use 'new'.")
		return
	}
	from, err := board.ParseSquare(fromSq)
	if err != nil {
		h.view.ShowError(err)
		return
	}
	to, err := board.ParseSquare(toSq)
	if err != nil {
		h.view.ShowError(err)
		return
	}

	v, err := h.svc.MakeMove(h.gameID, from, to)
	if err != nil {
		h.view.ShowError(describe(err))
		return
	}

	if last, ok := v.LastMove(); ok {
		h.view.ShowMove(last)
	}
	h.view.DisplayBoard(&v.Snapshot)

	if v.State.IsTerminal() {
		h.view.ShowGameOver(v.State)
		if h.prefs != nil {
			if err := h.prefs.RecordResult(v.State); err != nil {
				log.Printf("Failed to record result: %v", err)
			}
		}
		h.svc.DeleteGame(h.gameID)
		h.gameID = ""
	}
}

func (h *CLIHandler) handleDestinations(sq string) {
	if h.gameID == "" {
		h.view.ShowMessage("No active game. Use 'new'.")
		return
	}
	from, err := board.ParseSquare(sq)
	if err != nil {
		h.view.ShowError(err)
		return
	}
	dests, err := h.svc.LegalDestinations(h.gameID, from)
	if err != nil {
		h.view.ShowError(describe(err))
		return
	}
	h.view.ShowDestinations(from, dests)
	if v, err := h.svc.GetGame(h.gameID); err == nil && len(dests) > 0 {
		h.view.DisplayBoard(&v.Snapshot, dests...)
	}
}

func (h *CLIHandler) showStats() {
	if h.prefs == nil {
		h.view.ShowMessage("Statistics are not stored (no preferences path)")
		return
	}
	stats, err := h.prefs.LoadStats()
	if err != nil {
		h.view.ShowError(err)
		return
	}
	h.view.ShowMessage(fmt.Sprintf("Games: %d  White wins: %d  Black wins: %d  Stalemates: %d",
		stats.GamesPlayed, stats.WhiteWins, stats.BlackWins, stats.Stalemates))
}

func (h *CLIHandler) savePrefs() {
	if h.prefs == nil {
		return
	}
	p, err := h.prefs.LoadPreferences()
	if err != nil {
		log.Printf("Failed to load preferences: %v", err)
		return
	}
	p.Theme = string(h.view.Theme())
	p.ShowCoords = h.view.Coords()
	if err := h.prefs.SavePreferences(p); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}

// describe turns rule errors into player-facing text
func describe(err error) error {
	switch {
	case errors.Is(err, game.ErrSelfCheck):
		return errors.New("that move would leave your king in check")
	case errors.Is(err, game.ErrGameOver):
		return errors.New("the game is over, start a new one with 'new'")
	}
	return err
}
