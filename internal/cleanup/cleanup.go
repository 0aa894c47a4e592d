// Package cleanup implements pruning of old export files.
package cleanup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ExportPrefix is the name prefix of files written by "byetax export".
const ExportPrefix = "ByeTax_"

type exportFile struct {
	name    string
	modTime time.Time
}

// exports lists the export files in dir, oldest first.
func exports(dir string) ([]exportFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading export directory: %w", err)
	}

	var files []exportFile
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.HasPrefix(entry.Name(), ExportPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		files = append(files, exportFile{name: entry.Name(), modTime: info.ModTime()})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].modTime.Equal(files[j].modTime) {
			return files[i].name < files[j].name
		}
		return files[i].modTime.Before(files[j].modTime)
	})
	return files, nil
}

func remove(dir string, names []string, dryRun bool) ([]string, error) {
	var pruned []string
	for _, name := range names {
		if !dryRun {
			if err := os.Remove(filepath.Join(dir, name)); err != nil {
				return pruned, fmt.Errorf("removing %s: %w", name, err)
			}
		}
		pruned = append(pruned, name)
	}
	return pruned, nil
}

// PruneByAge removes export files last modified more than maxAgeDays ago.
// If dryRun is true, no files are deleted; the function only returns
// the names that would be removed.
func PruneByAge(dir string, maxAgeDays int, dryRun bool) ([]string, error) {
	files, err := exports(dir)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -maxAgeDays)
	var names []string
	for _, f := range files {
		if f.modTime.Before(cutoff) {
			names = append(names, f.name)
		}
	}
	return remove(dir, names, dryRun)
}

// PruneKeepRecent removes all export files except the keep most recent.
// If dryRun is true, no files are deleted.
func PruneKeepRecent(dir string, keep int, dryRun bool) ([]string, error) {
	files, err := exports(dir)
	if err != nil {
		return nil, err
	}
	if len(files) <= keep {
		return nil, nil
	}

	var names []string
	for _, f := range files[:len(files)-keep] {
		names = append(names, f.name)
	}
	return remove(dir, names, dryRun)
}
