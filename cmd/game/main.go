package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/td/internal/application/game"
	"github.com/younwookim/td/internal/application/replay"
	"github.com/younwookim/td/internal/application/scene/playing"
	"github.com/younwookim/td/internal/bootstrap"
)

func main() {
	// Parse command line flags
	settingsFlag := flag.String("settings", "settings.json", "Runtime settings file (missing = defaults)")
	contentFlag := flag.String("content", "", "Directory with entities.json and levels.json (default: embedded)")
	recordFlag := flag.String("record", "", "Record commands to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded command log")
	headlessFlag := flag.Bool("headless", false, "With -replay, run without a window and print the final state")
	flag.Parse()

	rt, err := bootstrap.Open(bootstrap.Options{SettingsPath: *settingsFlag, ContentDir: *contentFlag})
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer func() { _ = rt.Close() }()

	var data *replay.ReplayData
	if *replayFlag != "" {
		data, err = replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
	}

	if *headlessFlag {
		if data == nil {
			log.Fatal("-headless requires -replay")
		}
		snap, err := runHeadless(data, rt.Catalog, rt.Log)
		if err != nil {
			log.Fatalf("Replay failed: %v", err)
		}
		printSummary(snap)
		return
	}

	if data != nil {
		// the log carries its own starting position and rules
		e, err := replay.NewReplayer(*data).NewEngine(rt.Catalog, rt.Log)
		if err != nil {
			log.Fatalf("Failed to prepare replay: %v", err)
		}
		rt.Session = rebind(rt, e)
	}

	scn := playing.New(rt.Session, playing.Options{
		RecordPath: *recordFlag,
		Replay:     data,
		Log:        rt.Log,
	})
	w, h := playing.ScreenSize(rt.Catalog)
	g := game.New(scn, w, h)
	if data == nil {
		g.UseClock(time.Now)
	}

	display := rt.Settings.Display
	ebiten.SetWindowSize(w*display.Scale, h*display.Scale)
	ebiten.SetWindowTitle("Tower Defense")
	ebiten.SetTPS(display.Framerate)

	// Run game
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
