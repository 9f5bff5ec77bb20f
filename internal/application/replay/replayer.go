package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/younwookim/td/internal/application/system"
)

// Replayer feeds a recorded command log back into an engine
type Replayer struct {
	data ReplayData
	pos  int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if data.Version != Version {
		return nil, fmt.Errorf("unsupported replay version %q", data.Version)
	}

	return &data, nil
}

// Next returns the next command and advances
func (r *Replayer) Next() (system.Command, bool, error) {
	if r.pos >= len(r.data.Entries) {
		return nil, false, nil
	}
	entry := r.data.Entries[r.pos]
	r.pos++

	cmd, err := Decode(entry)
	if err != nil {
		return nil, false, err
	}
	return cmd, true, nil
}

// NewEngine builds a fresh engine in the recorded starting position
func (r *Replayer) NewEngine(catalog *system.Catalog, log zerolog.Logger) (*system.Engine, error) {
	return system.New(catalog, r.data.Rules, log, r.data.Level)
}

// Run executes every remaining command against engine and returns how many ran
func (r *Replayer) Run(engine *system.Engine) (int, error) {
	n := 0
	for {
		cmd, ok, err := r.Next()
		if err != nil {
			return n, err
		}
		if !ok {
			return n, nil
		}
		engine.Execute(cmd)
		n++
	}
}

// Position returns the index of the next entry
func (r *Replayer) Position() int {
	return r.pos
}

// Total returns the number of entries
func (r *Replayer) Total() int {
	return len(r.data.Entries)
}

// Done reports whether every entry has been consumed
func (r *Replayer) Done() bool {
	return r.pos >= len(r.data.Entries)
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.pos = 0
}
