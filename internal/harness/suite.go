package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScenarioNotFoundError is returned when a named scenario file does not exist.
type ScenarioNotFoundError struct {
	Path         string
	ResolvedPath string
}

func (e *ScenarioNotFoundError) Error() string {
	return fmt.Sprintf("scenario file %q does not exist (resolved to: %s)", e.Path, e.ResolvedPath)
}

// FindScenarios returns the scenario files selected by path. A file is
// returned as is; a directory is searched recursively for *.yaml and *.yml
// files. When filter is non-empty only files whose base name (without
// extension) matches the glob are kept. Results are sorted.
func FindScenarios(path, filter string) ([]string, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		abs, _ := filepath.Abs(path)
		return nil, &ScenarioNotFoundError{Path: path, ResolvedPath: abs}
	}
	if err != nil {
		return nil, err
	}
	if filter != "" {
		if _, err := filepath.Match(filter, ""); err != nil {
			return nil, fmt.Errorf("invalid filter %q: %w", filter, err)
		}
	}

	keep := func(p string) bool {
		if filter == "" {
			return true
		}
		base := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		ok, _ := filepath.Match(filter, base)
		return ok
	}

	if !info.IsDir() {
		if !keep(path) {
			return []string{}, nil
		}
		return []string{path}, nil
	}

	files := []string{}
	err = filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return nil
		}
		ext := filepath.Ext(p)
		if (ext == ".yaml" || ext == ".yml") && keep(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
