// FILE: cmd/chess/main.go
package main

import (
	"flag"
	"log"
	"os"

	"github.com/fatih/color"

	"chessrules/internal/cli"
	"chessrules/internal/prefs"
	"chessrules/internal/service"
	"chessrules/internal/storage"
	clitransport "chessrules/internal/transport/cli"
)

func main() {
	var (
		storagePath = flag.String("storage-path", "", "Path to SQLite game log (disabled if empty)")
		prefsPath   = flag.String("prefs-path", "", "Directory for saved preferences (not saved if empty)")
		themeName   = flag.String("theme", "", "Board color theme: off, brown, green, gray (overrides saved preference)")
		historyFile = flag.String("history", "", "Readline history file (interactive mode only)")
	)
	flag.Parse()

	var store *storage.Store
	if *storagePath != "" {
		var err error
		store, err = storage.NewStore(*storagePath, false)
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
		if err := store.InitDB(); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
	}
	svc := service.New(store)
	defer func() {
		if err := svc.Shutdown(); err != nil {
			log.Printf("Warning: shutdown: %v", err)
		}
	}()

	var prefStore *prefs.Store
	if *prefsPath != "" {
		var err error
		prefStore, err = prefs.Open(*prefsPath)
		if err != nil {
			log.Fatalf("Failed to open preferences: %v", err)
		}
		defer prefStore.Close()
	}

	interactive := cli.IsTerminal(os.Stdin) && cli.IsTerminal(os.Stdout)
	var input cli.LineReader
	if interactive {
		rl, err := cli.NewReadline(*historyFile)
		if err != nil {
			log.Fatalf("Failed to start line editor: %v", err)
		}
		input = rl
	} else {
		input = cli.NewScanReader(os.Stdin, os.Stdout)
		color.NoColor = true
	}
	defer input.Close()

	view := cli.New(input, os.Stdout)
	applyPreferences(view, prefStore, *themeName, interactive)

	clitransport.New(svc, view, prefStore).Run()
}

// applyPreferences sets the theme from the flag, then saved preferences;
// ANSI themes are only used on a terminal
func applyPreferences(view *cli.CLI, store *prefs.Store, flagTheme string, interactive bool) {
	name := flagTheme
	if store != nil {
		p, err := store.LoadPreferences()
		if err != nil {
			log.Printf("Warning: failed to load preferences: %v", err)
		} else {
			view.SetCoords(p.ShowCoords)
			if name == "" {
				name = p.Theme
			}
		}
	}
	if name == "" || !interactive {
		return
	}
	theme, err := cli.ParseTheme(name)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	if err := view.SetTheme(theme); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
