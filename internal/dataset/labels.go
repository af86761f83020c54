package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// YOLO class ids. The grid image carries a whole-segment classification,
// encoded as a detection label with a full-frame box so standard YOLO
// tooling can consume it.
const (
	ClassSmoke   = 0
	ClassNoSmoke = 1
)

// classNames is indexed by class id.
var classNames = []string{"smoke", "no_smoke"}

// fullFrameBox is the normalized whole-image bounding box shared by every
// label: center (0.5, 0.5), width 1.0, height 1.0.
const fullFrameBox = "0.5 0.5 1.0 1.0"

// WriteLabel writes a single-line YOLO label file for one segment.
func WriteLabel(path string, hasSmoke bool) error {
	class := ClassNoSmoke
	if hasSmoke {
		class = ClassSmoke
	}

	line := fmt.Sprintf("%d %s\n", class, fullFrameBox)
	if err := os.WriteFile(path, []byte(line), 0o644); err != nil {
		return fmt.Errorf("write label: %w", err)
	}
	return nil
}

// ensureClasses writes classes.txt if it does not exist yet.
func (w *Writer) ensureClasses() error {
	path := filepath.Join(w.root, classesFileName)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	content := strings.Join(classNames, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write classes file: %w", err)
	}
	return nil
}
