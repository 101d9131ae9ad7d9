package ilp

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// SolveOptions configures the external solver invocation.
type SolveOptions struct {
	// SolverPath is the solver binary (e.g. "cbc", "scip", "highs").
	SolverPath string
	// TimeLimit bounds the solver's own search; zero means no limit.
	TimeLimit time.Duration
	// WorkDir is where the .mps/.mst/.sol temp files are written; the OS
	// temp directory is used if empty.
	WorkDir string
	// KeepFiles skips cleanup of the temp files on return, for
	// --ilp-no-solve style inspection.
	KeepFiles bool
}

// Solution is a solved variable assignment, one float64 per Model column,
// rounded to {0,1} for binary columns by the caller as needed.
type Solution struct {
	Values    []float64
	Objective float64
}

// Solve writes m (and, if mstContents is non-nil, that warm start) to
// temp files, invokes the configured solver as a subprocess bounded by
// opts.TimeLimit, and parses its solution file back. Temp files are
// removed on every exit path unless opts.KeepFiles is set.
func Solve(ctx context.Context, m *Model, mstContents []byte, opts SolveOptions) (*Solution, error) {
	dir := opts.WorkDir
	if dir == "" {
		dir = os.TempDir()
	}

	base := filepath.Join(dir, fmt.Sprintf("octischem-%d", time.Now().UnixNano()))
	mpsPath := base + ".mps"
	mstPath := base + ".mst"
	solPath := base + ".sol"

	if !opts.KeepFiles {
		defer os.Remove(mpsPath)
		defer os.Remove(mstPath)
		defer os.Remove(solPath)
	}

	mpsFile, err := os.Create(mpsPath)
	if err != nil {
		return nil, fmt.Errorf("ilp: creating mps file: %w", err)
	}
	writeErr := WriteMPS(mpsFile, m, "octischematize")
	closeErr := mpsFile.Close()
	if writeErr != nil {
		return nil, fmt.Errorf("ilp: writing mps file: %w", writeErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("ilp: closing mps file: %w", closeErr)
	}

	if mstContents != nil {
		if err := os.WriteFile(mstPath, mstContents, 0o644); err != nil {
			return nil, fmt.Errorf("ilp: writing warm start file: %w", err)
		}
	}

	if _, err := exec.LookPath(opts.SolverPath); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSolverUnavailable, opts.SolverPath, err)
	}

	args := []string{mpsPath}
	if mstContents != nil {
		args = append(args, "-mst", mstPath)
	}
	if opts.TimeLimit > 0 {
		args = append(args, "-sec", strconv.Itoa(int(opts.TimeLimit.Seconds())))
	}
	args = append(args, "-solve", "-solu", solPath)

	runCtx := ctx
	var cancel context.CancelFunc
	if opts.TimeLimit > 0 {
		runCtx, cancel = context.WithTimeout(ctx, opts.TimeLimit+5*time.Second)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, opts.SolverPath, args...)
	if err := cmd.Run(); err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return nil, ErrSolverTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrSolverUnavailable, err)
	}

	return parseSolution(solPath, m)
}

// parseSolution reads a CBC-style solution file: a header line, then one
// "<index> <name> <value> <reduced cost>" row per column, by name.
func parseSolution(path string, m *Model) (*Solution, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ilp: reading solution file: %w", err)
	}
	defer f.Close()

	byName := make(map[string]int, len(m.cols))
	for i, c := range m.cols {
		byName[c.name] = i
	}

	sol := &Solution{Values: make([]float64, len(m.cols))}

	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if first {
			first = false
			if strings.HasPrefix(strings.ToLower(line), "infeasible") {
				return nil, ErrInfeasible
			}
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		name := fields[1]
		val, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			continue
		}
		if ci, ok := byName[name]; ok {
			sol.Values[ci] = val
		}
		if strings.EqualFold(name, "COST") {
			sol.Objective = val
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ilp: scanning solution file: %w", err)
	}
	return sol, nil
}
