package history

import (
	"fmt"
	"os"
	"sort"
)

// CollectOutputs scans an installer output directory and returns the file
// names it contains, sorted
func CollectOutputs(dir string) ([]string, error) {
	var outputs []string

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // No outputs yet
		}
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		outputs = append(outputs, entry.Name())
	}

	sort.Strings(outputs)

	return outputs, nil
}
