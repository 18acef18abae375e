package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/ember-gfx/ember/config"
)

// OutputManager writes run artifacts to a directory: window stats,
// replay audit rows, and the config snapshot that produced them.
type OutputManager struct {
	dir        string
	statsFile  *os.File
	replayFile *os.File

	statsHeaderWritten  bool
	replayHeaderWritten bool
}

// NewOutputManager creates the output directory and opens the CSV
// files. Returns nil if dir is empty (output disabled); all methods
// are no-ops on a nil manager.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating telemetry.csv: %w", err)
	}
	om.statsFile = f

	f, err = os.Create(filepath.Join(dir, "replay.csv"))
	if err != nil {
		om.statsFile.Close()
		return nil, fmt.Errorf("creating replay.csv: %w", err)
	}
	om.replayFile = f

	return om, nil
}

// WriteConfig saves the active configuration next to the CSVs so a run
// can be reproduced from its output directory alone.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteStats appends a window stats record to telemetry.csv.
func (om *OutputManager) WriteStats(stats WindowStats) error {
	if om == nil {
		return nil
	}
	records := []WindowStats{stats}
	if !om.statsHeaderWritten {
		if err := gocsv.Marshal(records, om.statsFile); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		om.statsHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.statsFile); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WriteReplayEvent appends a replay audit row to replay.csv.
func (om *OutputManager) WriteReplayEvent(e ReplayEvent) error {
	if om == nil {
		return nil
	}
	records := []ReplayEvent{e}
	if !om.replayHeaderWritten {
		if err := gocsv.Marshal(records, om.replayFile); err != nil {
			return fmt.Errorf("writing replay event: %w", err)
		}
		om.replayHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.replayFile); err != nil {
		return fmt.Errorf("writing replay event: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	if om.statsFile != nil {
		if err := om.statsFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if om.replayFile != nil {
		if err := om.replayFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
