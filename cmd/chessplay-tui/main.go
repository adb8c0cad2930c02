// Command chessplay-tui plays a two-player game in the terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/hailam/chessboard/internal/play"
	"github.com/hailam/chessboard/internal/storage"
	"github.com/hailam/chessboard/internal/tui"
)

func main() {
	dataDir := flag.String("data-dir", "", "Directory for game statistics (default: $"+storage.DataDirEnv+" or the platform data directory)")
	noStorage := flag.Bool("no-storage", storage.DisabledByEnv(), "Do not record finished games ($"+storage.NoStorageEnv+")")
	logFile := flag.String("log", "", "Write diagnostics to this file instead of discarding them")
	flag.Parse()

	// The terminal belongs to tcell; logs go to a file or nowhere.
	log.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	var rec play.Recorder
	if !*noStorage {
		dir := ""
		if *dataDir != "" {
			dir = filepath.Join(*dataDir, "db")
		}
		store, err := storage.Open(dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: statistics disabled: %v\n", err)
		} else {
			defer store.Close()
			rec = store
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		os.Exit(1)
	}

	app := tui.New(screen, play.NewSession(rec))
	err = app.Run()
	screen.Fini()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
