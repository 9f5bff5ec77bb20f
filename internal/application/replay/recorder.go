package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/younwookim/td/internal/application/system"
)

// Recorder collects the command log of a session
type Recorder struct {
	data      ReplayData
	recording bool
}

// NewRecorder starts a log for a run beginning on level with rules
func NewRecorder(level int, rules system.Rules) *Recorder {
	return &Recorder{
		data: ReplayData{
			Version:   Version,
			SessionID: uuid.NewString(),
			Level:     level,
			Rules:     rules,
			StartTime: time.Now().Format(time.RFC3339),
			Entries:   make([]Entry, 0, 3600), // about a minute of ticks at 60fps
		},
		recording: true,
	}
}

// Record appends cmd issued at tick. Commands the log cannot express are skipped.
func (r *Recorder) Record(tick uint64, cmd system.Command) {
	if !r.recording {
		return
	}
	entry, err := Encode(tick, cmd)
	if err != nil {
		return
	}
	r.data.Entries = append(r.data.Entries, entry)
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Entries) == 0 {
		return fmt.Errorf("no entries to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// Len returns the number of recorded entries
func (r *Recorder) Len() int {
	return len(r.data.Entries)
}

// Data returns the replay data
func (r *Recorder) Data() ReplayData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
