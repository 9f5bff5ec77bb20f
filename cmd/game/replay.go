package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/younwookim/td/internal/application/replay"
	"github.com/younwookim/td/internal/application/session"
	"github.com/younwookim/td/internal/application/system"
	"github.com/younwookim/td/internal/bootstrap"
)

// runHeadless plays data to the end on a fresh engine and returns its final state
func runHeadless(data *replay.ReplayData, catalog *system.Catalog, log zerolog.Logger) (system.Snapshot, error) {
	r := replay.NewReplayer(*data)
	engine, err := r.NewEngine(catalog, log)
	if err != nil {
		return system.Snapshot{}, fmt.Errorf("failed to build engine: %w", err)
	}

	n, err := r.Run(engine)
	if err != nil {
		return engine.Snapshot(), fmt.Errorf("entry %d: %w", n, err)
	}
	log.Info().Str("session", data.SessionID).Int("entries", n).Uint64("tick", engine.Tick()).Msg("replay finished")
	return engine.Snapshot(), nil
}

// rebind gives a replay its own session; replays never touch the save slot
func rebind(rt *bootstrap.Runtime, engine *system.Engine) *session.Session {
	rt.Engine = engine
	s := session.New(engine, nil, rt.Log)
	s.SetMaxDelta(rt.Settings.Display.MaxDeltaTime)
	return s
}

func summary(snap system.Snapshot) string {
	return fmt.Sprintf("level=%d tick=%d elapsed=%.3f gold=%d lives=%d towers=%d enemies=%d phase=%s",
		snap.LevelIndex, snap.Tick, snap.Elapsed, snap.Gold, snap.Lives,
		len(snap.Towers), len(snap.Enemies), snap.Phase)
}

func printSummary(snap system.Snapshot) {
	fmt.Println(summary(snap))
}
