package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/pyhub-apps/motopace/pkg/event"
)

// ListEvents returns the events that have both a race and a practice
// document under dataDir, oldest first. Files outside the naming scheme
// are ignored.
func ListEvents(dataDir string) ([]event.Key, error) {
	races, err := listKind(dataDir, event.Race)
	if err != nil {
		return nil, err
	}
	practices, err := listKind(dataDir, event.Practice)
	if err != nil {
		return nil, err
	}

	var keys []event.Key
	for key := range races {
		if _, ok := practices[key]; ok {
			keys = append(keys, key)
		}
	}
	slices.SortFunc(keys, event.Compare)
	return keys, nil
}

func listKind(dataDir string, kind event.Kind) (map[event.Key]struct{}, error) {
	dir := filepath.Join(dataDir, kind.Dir())
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataDir, err)
	}

	keys := make(map[event.Key]struct{}, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		key, k, ok := event.ParseFilename(entry.Name())
		if ok && k == kind {
			keys[key] = struct{}{}
		}
	}
	return keys, nil
}
