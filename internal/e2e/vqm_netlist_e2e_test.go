package e2e

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/robert-at-pretension-io/vqm-netlist/internal/facts"
)

func TestVqmNetlistE2E_Testdata(t *testing.T) {
	repoRoot := findRepoRoot(t)

	bin := buildBinary(t, repoRoot)

	home := t.TempDir()
	env := append(os.Environ(),
		"HOME="+home,
		"XDG_CONFIG_HOME="+filepath.Join(home, ".config"),
	)

	traces := []string{
		filepath.Join(repoRoot, "testdata", "traces", "counter.trace"),
		filepath.Join(repoRoot, "testdata", "traces", "concat.trace"),
	}

	for _, trace := range traces {
		t.Run(filepath.Base(trace), func(t *testing.T) {
			tables := runFactsJSON(t, bin, trace, env)
			if len(tables.Modules) == 0 {
				t.Fatalf("no modules exported for %s", trace)
			}
			if len(tables.Nets) == 0 {
				t.Fatalf("no nets exported for %s", trace)
			}
		})
	}
}

func TestVqmNetlistE2E_CounterFacts(t *testing.T) {
	repoRoot := findRepoRoot(t)
	bin := buildBinary(t, repoRoot)

	home := t.TempDir()
	env := append(os.Environ(),
		"HOME="+home,
		"XDG_CONFIG_HOME="+filepath.Join(home, ".config"),
	)

	trace := filepath.Join(repoRoot, "testdata", "traces", "counter.trace")
	tables := runFactsJSON(t, bin, trace, env)

	if got := len(tables.Modules); got != 1 {
		t.Fatalf("modules = %d, want 1", got)
	}
	if tables.Modules[0].Name != "counter" {
		t.Fatalf("module name = %q, want counter", tables.Modules[0].Name)
	}

	// assign q count expands over the 4-bit indexed target.
	if got := len(tables.Assignments); got != 4 {
		t.Fatalf("assignments = %d, want 4", got)
	}
	// Four flops, four ports each.
	if got := len(tables.Nodes); got != 4 {
		t.Fatalf("nodes = %d, want 4", got)
	}
	if got := len(tables.Ports); got != 16 {
		t.Fatalf("ports = %d, want 16", got)
	}
	if got := len(tables.Params); got != 2 {
		t.Fatalf("params = %d, want 2", got)
	}
}

func runFactsJSON(t *testing.T, bin, trace string, env []string) facts.Tables {
	t.Helper()

	cmd := exec.Command(bin, "facts", trace)
	cmd.Env = env
	cmd.Dir = t.TempDir()
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("vqm-netlist facts failed for %s: %v\nstderr:\n%s", trace, err, stderr.String())
	}

	var tables facts.Tables
	if err := json.Unmarshal(stdout.Bytes(), &tables); err != nil {
		t.Fatalf("parse JSON output for %s: %v\nstdout:\n%s", trace, err, stdout.String())
	}
	return tables
}

func buildBinary(t *testing.T, repoRoot string) string {
	t.Helper()
	binDir := t.TempDir()
	binPath := filepath.Join(binDir, "vqm-netlist")
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/vqm-netlist")
	cmd.Dir = repoRoot
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("build vqm-netlist failed: %v\n%s", err, string(out))
	}
	return binPath
}

func findRepoRoot(t *testing.T) string {
	t.Helper()
	start, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}

	dir := start
	for {
		candidate := filepath.Join(dir, "testdata", "traces", "counter.trace")
		if _, err := os.Stat(candidate); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("repo root not found from %s", start)
		}
		dir = parent
	}
}
