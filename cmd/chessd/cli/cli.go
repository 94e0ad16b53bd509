// FILE: cmd/chessd/cli/cli.go
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"chessrules/internal/storage"
)

// Run is the entry point for the db subcommands
func Run(args []string) error {
	return run(args, os.Stdout)
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("subcommand required: init, delete, query, or moves")
	}

	switch args[0] {
	case "init":
		return runInit(args[1:], out)
	case "delete":
		return runDelete(args[1:], out)
	case "query":
		return runQuery(args[1:], out)
	case "moves":
		return runMoves(args[1:], out)
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

// openStore parses -path plus any extra flags registered by setup
func openStore(name string, args []string, setup func(*flag.FlagSet)) (*storage.Store, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")
	if setup != nil {
		setup(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *path == "" {
		return nil, fmt.Errorf("database path required")
	}

	store, err := storage.NewStore(*path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return store, nil
}

func runInit(args []string, out io.Writer) error {
	store, err := openStore("init", args, nil)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	fmt.Fprintln(out, "Database initialized")
	return nil
}

func runDelete(args []string, out io.Writer) error {
	store, err := openStore("delete", args, nil)
	if err != nil {
		return err
	}
	if err := store.DeleteDB(); err != nil {
		return fmt.Errorf("failed to delete database: %w", err)
	}
	fmt.Fprintln(out, "Database deleted")
	return nil
}

func runQuery(args []string, out io.Writer) error {
	var gameID, label *string
	store, err := openStore("query", args, func(fs *flag.FlagSet) {
		gameID = fs.String("gameId", "", "Game ID to filter (optional, * for all)")
		label = fs.String("label", "", "Label to filter (optional, * for all)")
	})
	if err != nil {
		return err
	}
	defer store.Close()

	games, err := store.QueryGames(*gameID, *label)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	if len(games) == 0 {
		fmt.Fprintln(out, "No games found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Game ID\tLabel\tResult\tStart Time")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, g := range games {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			g.GameID,
			g.Label,
			g.Result,
			g.StartTimeUTC.Format("2006-01-02 15:04:05"),
		)
	}
	w.Flush()

	fmt.Fprintf(out, "\nFound %d game(s)\n", len(games))
	return nil
}

func runMoves(args []string, out io.Writer) error {
	var gameID *string
	store, err := openStore("moves", args, func(fs *flag.FlagSet) {
		gameID = fs.String("gameId", "", "Game ID (required)")
	})
	if err != nil {
		return err
	}
	defer store.Close()

	if *gameID == "" {
		return fmt.Errorf("game ID required")
	}
	moves, err := store.QueryMoves(*gameID)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	for _, m := range moves {
		check := ""
		if m.IsCheck {
			check = "+"
		}
		fmt.Fprintf(out, "%3d. %s %s%s\n", m.MoveNumber, m.PlayerColor, m.Move, check)
	}
	fmt.Fprintf(out, "\n%d move(s)\n", len(moves))
	return nil
}
