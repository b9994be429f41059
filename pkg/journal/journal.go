// Package journal persists analysis runs to a directory as JSON files so CLI
// invocations leave an auditable trail without a database.
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pulse-api/pkg/analyzer"
)

// RunRecord captures one end-to-end analysis run for audit.
type RunRecord struct {
	Timestamp    time.Time              `json:"timestamp"`
	RunNumber    int                    `json:"run_number"`
	Source       string                 `json:"source,omitempty"`
	Model        string                 `json:"model,omitempty"`
	PromptDigest string                 `json:"prompt_digest,omitempty"`
	Metrics      *analyzer.PriceMetrics `json:"metrics,omitempty"`
	Summary      string                 `json:"summary,omitempty"`
	Success      bool                   `json:"success"`
	ErrorMessage string                 `json:"error_message,omitempty"`
}

// Writer persists run records to a directory as JSON files.
type Writer struct {
	dir   string
	seq   int
	nowFn func() time.Time
}

// NewWriter constructs a journal writer rooted at dir.
func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = "journal"
	}
	_ = os.MkdirAll(dir, 0o755)
	return &Writer{dir: dir, nowFn: time.Now}
}

// WriteRun writes a run record to a timestamped JSON file and returns its path.
func (w *Writer) WriteRun(rec *RunRecord) (string, error) {
	if rec == nil {
		return "", fmt.Errorf("journal: nil record")
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = w.nowFn()
	}
	w.seq++
	rec.RunNumber = w.seq
	name := fmt.Sprintf("run_%s_%05d.json", rec.Timestamp.UTC().Format("20060102_150405"), w.seq)
	path := filepath.Join(w.dir, name)
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
