package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/waverun-org/waverun/internal/diagnostics"
	"github.com/waverun-org/waverun/internal/runner"
	"github.com/waverun-org/waverun/internal/scenario"
	"github.com/waverun-org/waverun/internal/stringutil"
)

// runIDDisplayLen is how much of the run ID the tables show; the full ID
// stays in the RunResult and the logs.
const runIDDisplayLen = 8

var runHeader = table.Row{
	"Status",
	"Run ID",
	"Label",
	"Run Dir",
	"Exit Code",
	"Artifacts",
}

// RenderRunSummary renders a one-row table describing a finished run.
func RenderRunSummary(result *runner.RunResult) string {
	symbol := StateSymbol(result.State)
	status := StateColorize(fmt.Sprintf("%s %s", symbol, StateText(result.State)), result.State)

	var artifacts int
	if result.Outputs != nil {
		artifacts = len(result.Outputs.Artifacts)
	}

	t := table.NewWriter()
	t.AppendHeader(runHeader)
	t.AppendRow(table.Row{
		status,
		stringutil.TruncString(result.RunID, runIDDisplayLen),
		result.Label,
		result.RunDir,
		result.ExitCode,
		artifacts,
	})
	return t.Render()
}

// RenderBatchSummary renders one row per run of a batch.
func RenderBatchSummary(results []*runner.RunResult) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Status", "Label", "Run Dir", "Exit Code"})
	for i, result := range results {
		symbol := StateSymbol(result.State)
		status := StateColorize(fmt.Sprintf("%s %s", symbol, StateText(result.State)), result.State)
		t.AppendRow(table.Row{i + 1, status, result.Label, result.RunDir, result.ExitCode})
	}
	return t.Render()
}

// RenderScenarios renders the scenario defaults registry.
func RenderScenarios(reg *scenario.Registry) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"ID", "Name", "NX", "DX", "CFL", "Wave Speed", "C Max", "Gamma", "T Final"})
	for _, id := range reg.IDs() {
		d, err := reg.Get(id)
		if err != nil {
			continue
		}
		t.AppendRow(table.Row{
			d.ScenarioID,
			scenario.Name(id),
			d.NX,
			d.DX,
			d.CFL,
			d.WaveSpeed,
			d.CMax,
			d.Gamma,
			d.TFinal,
		})
	}
	return t.Render()
}

// RenderRunList renders past run directories, one row each.
func RenderRunList(runs []runner.RunDirInfo) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Started At", "Label", "Directory"})
	for _, run := range runs {
		t.AppendRow(table.Row{
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.Label,
			run.Name,
		})
	}
	return t.Render()
}

// RenderMetrics renders error norms as a two-column table.
func RenderMetrics(m diagnostics.Metrics) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Norm", "Value"})
	t.AppendRow(table.Row{"L1", fmt.Sprintf("%.6e", m.L1)})
	t.AppendRow(table.Row{"L2", fmt.Sprintf("%.6e", m.L2)})
	t.AppendRow(table.Row{"Linf", fmt.Sprintf("%.6e", m.Linf)})
	return t.Render()
}

// RenderNotes formats normalization notes as a bulleted block.
func RenderNotes(notes []string) string {
	if len(notes) == 0 {
		return ""
	}
	var b strings.Builder
	for _, note := range notes {
		b.WriteString("  - ")
		b.WriteString(note)
		b.WriteString("\n")
	}
	return b.String()
}
