package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/younwookim/td/internal/application/replay"
	"github.com/younwookim/td/internal/application/system"
	"github.com/younwookim/td/internal/bootstrap"
	"github.com/younwookim/td/internal/infrastructure/audio"
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

func main() {
	settingsFlag := flag.String("settings", "settings.json", "Runtime settings file (missing = defaults)")
	contentFlag := flag.String("content", "", "Directory with entities.json and levels.json (default: embedded)")
	logFlag := flag.String("log", "td_term.log", "Log file; the terminal belongs to the game")
	recordFlag := flag.String("record", "", "Record commands to file")
	muteFlag := flag.Bool("mute", false, "Disable sound")
	flag.Parse()

	if err := run(*settingsFlag, *contentFlag, *logFlag, *recordFlag, *muteFlag); err != nil {
		fmt.Fprintf(os.Stderr, "td: %v\n", err)
		os.Exit(1)
	}
}

func run(settingsPath, contentDir, logFile, recordPath string, mute bool) error {
	rt, err := bootstrap.Open(bootstrap.Options{SettingsPath: settingsPath, ContentDir: contentDir, LogFile: logFile})
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	var rec *replay.Recorder
	if recordPath != "" {
		rec = replay.NewRecorder(rt.Engine.Level().Index, rt.Engine.Rules())
		rt.Session.Observe(func(tick uint64, cmd system.Command, _ system.Result) {
			rec.Record(tick, cmd)
		})
		defer func() {
			if err := rec.Save(recordPath); err != nil {
				rt.Log.Error().Err(err).Msg("failed to save recording")
			}
		}()
	}

	var player *audio.Player
	if !mute {
		player, err = audio.NewPlayer()
		if err != nil {
			rt.Log.Warn().Err(err).Msg("audio unavailable")
		}
		defer func() { _ = player.Close() }()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	v := newView(rt.Session, player, rt.Log)
	loop(screen, v)
	return nil
}

// loop runs input and frames until the player quits
func loop(screen tcell.Screen, v *view) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	last := time.Now()
	v.draw(screen)
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !v.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}
			v.draw(screen)

		case now := <-ticker.C:
			v.tick(now.Sub(last).Seconds())
			last = now
			v.draw(screen)
		}
	}
}
