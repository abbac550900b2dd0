package runner

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"time"

	"github.com/waverun-org/waverun/internal/stringutil"
)

// runDirPattern matches run directory names: run-<label>-<timestamp>.
var runDirPattern = regexp.MustCompile(`^run-(.+)-([0-9]{8}-[0-9]{6})$`)

// RunDirInfo describes one run directory found under the outputs root.
type RunDirInfo struct {
	Name      string
	Label     string
	StartedAt time.Time
}

// ListRuns enumerates run directories under outputsDir, newest first.
// Entries that do not follow the run directory naming convention are
// skipped. A missing outputs root yields an empty listing, not an error.
func ListRuns(outputsDir string) ([]RunDirInfo, error) {
	entries, err := os.ReadDir(outputsDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read outputs directory: %w", err)
	}

	var runs []RunDirInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		m := runDirPattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		startedAt, err := stringutil.ParseTimestamp(m[2])
		if err != nil {
			continue
		}
		runs = append(runs, RunDirInfo{
			Name:      entry.Name(),
			Label:     m[1],
			StartedAt: startedAt,
		})
	}

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].Name < runs[j].Name
		}
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	return runs, nil
}
