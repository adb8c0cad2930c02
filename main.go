// Chessboard - a two-player chess board built with Ebitengine
package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chessboard/internal/storage"
	"github.com/hailam/chessboard/internal/ui"
)

func main() {
	dataDir := flag.String("data-dir", "", "Directory for preferences and statistics (default: $"+storage.DataDirEnv+" or the platform data directory)")
	noStorage := flag.Bool("no-storage", storage.DisabledByEnv(), "Run without saving preferences or statistics ($"+storage.NoStorageEnv+")")
	flag.Parse()

	var store *storage.Storage
	if !*noStorage {
		dir := ""
		if *dataDir != "" {
			dir = filepath.Join(*dataDir, "db")
		}
		var err error
		store, err = storage.Open(dir)
		if err != nil {
			log.Printf("Warning: Failed to initialize storage: %v", err)
		} else {
			defer store.Close()
		}
	}

	game := ui.NewGame(store)
	defer game.Close()

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("Chessboard")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
