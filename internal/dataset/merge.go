package dataset

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Merge copies the dataset at src into dst. Files new to dst are copied
// as-is. For files present in both, JSON summaries merge key-wise, text
// files (labels, classes) merge line-wise without duplicating lines, and
// binary files such as the grid images are overwritten by src.
func Merge(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("source dataset: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source dataset %s is not a directory", src)
	}

	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}

		if _, err := os.Stat(target); os.IsNotExist(err) {
			return copyFile(path, target)
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			return mergeJSON(path, target)
		case ".txt", ".csv", ".log":
			return mergeLines(path, target)
		default:
			return copyFile(path, target)
		}
	})
}

// mergeJSON merges the summary at src into the one at dst. A file that
// does not parse as a summary is overwritten instead of merged.
func mergeJSON(src, dst string) error {
	merged := LoadSummary(dst)
	incoming := LoadSummary(src)
	if len(merged) == 0 && len(incoming) == 0 {
		log.Printf("dataset: %s not a summary file, overwriting", filepath.Base(dst))
		return copyFile(src, dst)
	}

	merged.Merge(incoming)
	return merged.Save(dst)
}

// mergeLines appends the lines of src that dst does not already contain.
func mergeLines(src, dst string) error {
	existing, err := os.ReadFile(dst)
	if err != nil {
		return err
	}
	incoming, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	seen := make(map[string]bool)
	for _, line := range strings.Split(string(existing), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			seen[line] = true
		}
	}

	var fresh []string
	for _, line := range strings.Split(string(incoming), "\n") {
		if line = strings.TrimSpace(line); line != "" && !seen[line] {
			fresh = append(fresh, line)
			seen[line] = true
		}
	}
	if len(fresh) == 0 {
		return nil
	}

	out := string(existing)
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	out += strings.Join(fresh, "\n") + "\n"

	return os.WriteFile(dst, []byte(out), 0o644)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", filepath.Base(src), err)
	}
	return out.Close()
}
