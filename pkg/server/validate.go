package server

import (
	"fmt"
	"strings"
)

// validatePath verifies a path used to create or delete a node. Read paths
// are deliberately looser: traversal just skips empty segments.
func validatePath(path string) error {
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("path [%s] does not start at the root", path)
	}

	if path == "/" {
		return fmt.Errorf("path cannot be the root")
	}

	if strings.HasSuffix(path, "/") {
		return fmt.Errorf("path [%s] should end in a node name, not a '/'", path)
	}
	return nil
}
