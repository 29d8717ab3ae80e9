package diag

import (
	"bytes"
	"fmt"
	"runtime/pprof"
	"sort"

	"github.com/google/pprof/profile"
)

// CaptureCPUProfile runs work under the runtime CPU profiler and returns a
// parsed *profile.Profile plus a short top-N human-readable report, so a
// caller (e.g. cmd/permgroup's profile subcommand) can print a summary
// without round-tripping through a file.
func CaptureCPUProfile(work func() error) (*profile.Profile, string, error) {
	var buf bytes.Buffer
	if err := pprof.StartCPUProfile(&buf); err != nil {
		return nil, "", fmt.Errorf("diag: start CPU profile: %w", err)
	}
	workErr := work()
	pprof.StopCPUProfile()
	if workErr != nil {
		return nil, "", workErr
	}

	prof, err := profile.Parse(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, "", fmt.Errorf("diag: parse CPU profile: %w", err)
	}
	return prof, topSamplesReport(prof, 10), nil
}

// topSamplesReport renders the top-N functions by self sample value (each
// sample is credited to the functions of its leaf location only), using the
// profile's own sample-value semantics (its first value type).
func topSamplesReport(prof *profile.Profile, n int) string {
	type row struct {
		name  string
		value int64
	}
	totals := make(map[string]int64)
	for _, s := range prof.Sample {
		if len(s.Value) == 0 || len(s.Location) == 0 {
			continue
		}
		loc := s.Location[0]
		for _, line := range loc.Line {
			if line.Function != nil {
				totals[line.Function.Name] += s.Value[0]
			}
		}
	}
	rows := make([]row, 0, len(totals))
	for name, v := range totals {
		rows = append(rows, row{name, v})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].value > rows[j].value })
	if len(rows) > n {
		rows = rows[:n]
	}

	var w bytes.Buffer
	for _, r := range rows {
		fmt.Fprintf(&w, "%10d  %s\n", r.value, r.name)
	}
	return w.String()
}
