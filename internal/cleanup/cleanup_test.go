package cleanup

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// createExport writes an export file with the given modification time.
func createExport(t *testing.T, dir, name string, mod time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("a,b\n"), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	if err := os.Chtimes(path, mod, mod); err != nil {
		t.Fatalf("setting mtime on %s: %v", name, err)
	}
	return name
}

func TestPruneByAge_RemovesOldExports(t *testing.T) {
	dir := t.TempDir()

	now := time.Now()
	old := createExport(t, dir, "ByeTax_홍길동_2023.csv", now.AddDate(0, 0, -60))
	recent := createExport(t, dir, "ByeTax_홍길동_2024.csv", now.AddDate(0, 0, -5))

	pruned, err := PruneByAge(dir, 30, false)
	if err != nil {
		t.Fatalf("PruneByAge failed: %v", err)
	}

	if len(pruned) != 1 || pruned[0] != old {
		t.Errorf("expected pruned=[%s], got %v", old, pruned)
	}
	if _, err := os.Stat(filepath.Join(dir, old)); !os.IsNotExist(err) {
		t.Errorf("expected %s to be deleted", old)
	}
	if _, err := os.Stat(filepath.Join(dir, recent)); err != nil {
		t.Errorf("expected %s to still exist: %v", recent, err)
	}
}

func TestPruneByAge_DryRun(t *testing.T) {
	dir := t.TempDir()
	old := createExport(t, dir, "ByeTax_a_2023.csv", time.Now().AddDate(0, 0, -60))

	pruned, err := PruneByAge(dir, 30, true)
	if err != nil {
		t.Fatalf("PruneByAge dry-run failed: %v", err)
	}
	if len(pruned) != 1 || pruned[0] != old {
		t.Errorf("expected pruned=[%s], got %v", old, pruned)
	}
	if _, err := os.Stat(filepath.Join(dir, old)); err != nil {
		t.Errorf("dry run should not delete %s: %v", old, err)
	}
}

func TestPruneKeepRecent(t *testing.T) {
	dir := t.TempDir()

	now := time.Now()
	first := createExport(t, dir, "ByeTax_a_2021.csv", now.Add(-3*time.Hour))
	second := createExport(t, dir, "ByeTax_a_2022.csv", now.Add(-2*time.Hour))
	createExport(t, dir, "ByeTax_a_2023.csv", now.Add(-1*time.Hour))
	createExport(t, dir, "notes.csv", now.Add(-10*time.Hour))

	pruned, err := PruneKeepRecent(dir, 1, false)
	if err != nil {
		t.Fatalf("PruneKeepRecent failed: %v", err)
	}
	if len(pruned) != 2 || pruned[0] != first || pruned[1] != second {
		t.Errorf("expected pruned=[%s %s], got %v", first, second, pruned)
	}
	if _, err := os.Stat(filepath.Join(dir, "notes.csv")); err != nil {
		t.Errorf("non-export file should be untouched: %v", err)
	}
}

func TestPruneMissingDir(t *testing.T) {
	pruned, err := PruneKeepRecent(filepath.Join(t.TempDir(), "nope"), 0, false)
	if err != nil || pruned != nil {
		t.Errorf("expected no-op, got %v, %v", pruned, err)
	}
}
