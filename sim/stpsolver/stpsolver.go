// Package stpsolver writes Steiner-tree problem files, invokes an
// external scipstp solver binary on them, and parses the resulting
// solution back into an edge set.
package stpsolver

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Problem is one Steiner-tree problem instance: a node-indexed edge list
// with costs, and the subset of nodes that must be connected (terminals).
type Problem struct {
	NumNodes     int
	NumTerminals int
	Edges        []Edge
}

// Edge is a weighted edge between 1-indexed node ids, matching the .stp
// file format's node numbering.
type Edge struct {
	From, To int
	Cost     float64
}

// WriteFile serializes a Problem to the .stp file format at path.
func WriteFile(path string, p Problem) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating stp file %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "33d32945 STP File, STP Format Version  1.00\n\n")
	fmt.Fprintf(w, "SECTION Graph\n")
	fmt.Fprintf(w, "Nodes %d\n", p.NumNodes)
	fmt.Fprintf(w, "Edges %d\n", len(p.Edges))
	for _, e := range p.Edges {
		fmt.Fprintf(w, "E %d %d %g\n", e.From, e.To, e.Cost)
	}
	fmt.Fprintf(w, "END\n\n")

	fmt.Fprintf(w, "SECTION Terminals\n")
	fmt.Fprintf(w, "Terminals %d\n", p.NumTerminals)
	for i := 1; i <= p.NumTerminals; i++ {
		fmt.Fprintf(w, "T %d\n", i)
	}
	fmt.Fprintf(w, "END\n\n")

	fmt.Fprintf(w, "SECTION MaximumDegrees\n")
	numLinks := p.NumNodes - p.NumTerminals
	for i := 0; i < p.NumTerminals; i++ {
		fmt.Fprintf(w, "MD %d\n", numLinks)
	}
	for i := 0; i < numLinks; i++ {
		fmt.Fprintf(w, "MD %d\n", p.NumTerminals)
	}
	fmt.Fprintf(w, "END\n\n")

	fmt.Fprintf(w, "EOF")
	return w.Flush()
}

// Solver drives the scipstp binary.
type Solver struct {
	BinPath string
}

// NewSolver wraps the scipstp binary located under binDir.
func NewSolver(binDir string) *Solver {
	return &Solver{BinPath: filepath.Join(binDir, "scipstp")}
}

// Solve runs scipstp on stpFile, writing its solution to solFile. The
// subprocess's own stdout/stderr are discarded. A binary that cannot be
// started or exits non-zero is returned as an error; a run that exits
// cleanly without a usable solution shows up only when ParseSolution
// reads solFile.
func (s *Solver) Solve(stpFile, solFile string) error {
	if err := os.MkdirAll(filepath.Dir(solFile), 0o755); err != nil {
		return fmt.Errorf("preparing solution dir for %s: %w", solFile, err)
	}
	cmd := exec.Command(s.BinPath,
		"-c", "set stp reduction 0",
		"-c", fmt.Sprintf("read %s", stpFile),
		"-c", "optimize",
		"-c", fmt.Sprintf("write solution %s", solFile),
		"-c", "quit",
	)
	cmd.Stdout = nil
	cmd.Stderr = nil
	logrus.Debugf("solving stp problem %s", stpFile)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running scipstp on %s: %w", stpFile, err)
	}
	return nil
}

var solutionEdgePattern = regexp.MustCompile(`x_(\d+)_(\d+)\s+1\s+\(obj:\d*\.?\d+\)`)

// ParseSolution reads a scipstp solution file and returns the selected
// edges as 0-based node-index pairs (the .stp format's x_<i>_<j>
// variables are 0-indexed into the problem's node list).
func ParseSolution(path string) ([][2]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening solution file %s: %w", path, err)
	}
	defer f.Close()

	var edges [][2]int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		m := solutionEdgePattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		i, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		j, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		edges = append(edges, [2]int{i, j})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading solution file %s: %w", path, err)
	}
	return edges, nil
}

// Cleanup removes every entry directly under dir (the .stp/.sol scratch
// directory) whose modification time is before cutoff. It does not
// filter by file extension, and a missing dir is not an error.
func Cleanup(dir string, cutoff time.Time) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading scratch dir %s: %w", dir, err)
	}
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(dir, e.Name()))
		}
	}
	return nil
}
