// Package artifact organizes the files a solver run leaves behind in its run
// directory: snapshot tables, the energy log, and the serialized input.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// energyLogName is the fixed name the solver writes its energy history to.
const energyLogName = "energy.csv"

// snapshotPattern matches solver snapshot files: a fixed prefix plus a
// numeric step suffix, any extension.
var snapshotPattern = regexp.MustCompile(`^snapshot_([0-9]+)\.([A-Za-z0-9]+)$`)

// Outputs lists the artifacts of a run plus hooks for semantic parsing
// (energy curves, CFL diagnostics, timing) that a downstream consumer can
// populate. The hooks are intentionally left nil here.
type Outputs struct {
	Artifacts      []string `json:"artifacts"`
	Energy         any      `json:"energy"`
	CFLDiagnostics any      `json:"cfl_diagnostics"`
	Timing         any      `json:"timing"`
}

// Rename prefixes solver-produced snapshot files and the energy log with the
// run label so runs sharing output conventions cannot collide. Files already
// carrying the prefix are left untouched, making the operation idempotent.
// It returns the number of files renamed.
func Rename(runDir, label string) (int, error) {
	entries, err := os.ReadDir(runDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read run directory: %w", err)
	}

	var renamed int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()

		var target string
		switch {
		case snapshotPattern.MatchString(name):
			m := snapshotPattern.FindStringSubmatch(name)
			target = fmt.Sprintf("%s_snapshot_%s.%s", label, m[1], m[2])
		case name == energyLogName && !strings.HasPrefix(name, label):
			target = fmt.Sprintf("%s_%s", label, energyLogName)
		default:
			continue
		}

		if err := os.Rename(filepath.Join(runDir, name), filepath.Join(runDir, target)); err != nil {
			return renamed, fmt.Errorf("failed to rename %s: %w", name, err)
		}
		renamed++
	}

	return renamed, nil
}

// Collect enumerates all regular files in the run directory as the artifact
// list, sorted by name.
func Collect(runDir string) (*Outputs, error) {
	entries, err := os.ReadDir(runDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read run directory: %w", err)
	}

	files := lo.Filter(entries, func(entry os.DirEntry, _ int) bool {
		return !entry.IsDir()
	})
	names := lo.Map(files, func(entry os.DirEntry, _ int) string {
		return entry.Name()
	})
	sort.Strings(names)

	return &Outputs{Artifacts: names}, nil
}
