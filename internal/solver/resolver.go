package solver

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/waverun-org/waverun/internal/fileutil"
)

// Resolver finds a runnable solver binary through an ordered search.
type Resolver struct {
	// Override short-circuits the search when set. It is populated from the
	// WAVERUN_SOLVER_EXE environment variable or the config file.
	Override string

	// ExtraDirs are searched after the PATH lookup, in order. The first
	// entry is conventionally the auto-build output directory.
	ExtraDirs []string
}

// ResolutionError reports that no candidate produced a runnable binary.
// Every attempted path is listed so a misconfigured environment can be
// diagnosed without re-running with extra tracing.
type ResolutionError struct {
	Name       string
	Candidates []string
}

func (e *ResolutionError) Error() string {
	tried := strings.Join(e.Candidates, " | ")
	if tried == "" {
		tried = e.Name
	}
	return fmt.Sprintf(
		"solver executable %q could not be resolved (tried: %s); set WAVERUN_SOLVER_EXE, pass --executable, or add it to PATH",
		e.Name, tried)
}

// Resolve returns the first runnable candidate for name: the file must
// exist, not be a directory, and carry an execute bit. The search order is:
//
//  1. the explicit path argument;
//  2. the configured/environment override;
//  3. name itself, when it contains a path separator;
//  4. a lookup on the execution search path;
//  5. the extra configured directories.
func (r *Resolver) Resolve(name, explicit string) (string, error) {
	var candidates []string

	if explicit != "" {
		candidates = append(candidates, fileutil.MustResolvePath(explicit))
	}
	if r.Override != "" {
		candidates = append(candidates, fileutil.MustResolvePath(r.Override))
	}
	if strings.ContainsRune(name, filepath.Separator) {
		candidates = append(candidates, fileutil.MustResolvePath(name))
	}
	if found, err := exec.LookPath(name); err == nil {
		candidates = append(candidates, found)
	}
	for _, dir := range r.ExtraDirs {
		candidates = append(candidates, filepath.Join(dir, name))
	}

	for _, candidate := range candidates {
		if fileutil.IsExecutable(candidate) {
			return candidate, nil
		}
	}

	return "", &ResolutionError{Name: name, Candidates: candidates}
}
