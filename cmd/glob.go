// Copyright © 2024 The ELPS authors

package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// defaultExtensions are the file extensions collected when walking a
// directory.
var defaultExtensions = []string{".c", ".h"}

// expandArgs expands arguments into the list of files to check. A
// directory, or a pattern ending with "/...", is walked recursively for
// files with one of exts. Other arguments pass through unchanged so that
// unreadable paths are reported by the reader. Paths matching an exclude
// pattern are dropped and duplicates are removed.
func expandArgs(args, excludes, exts []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] && !matchesAny(path, excludes) {
			seen[path] = true
			out = append(out, path)
		}
	}
	for _, arg := range args {
		dir, walk := strings.CutSuffix(arg, "/...")
		if walk && dir == "" {
			dir = "."
		}
		if !walk {
			if info, err := os.Stat(arg); err == nil && info.IsDir() {
				dir, walk = arg, true
			}
		}
		if !walk {
			add(arg)
			continue
		}
		files, err := findSourceFiles(dir, exts, excludes)
		if err != nil {
			return nil, fmt.Errorf("expanding %s: %w", arg, err)
		}
		for _, f := range files {
			add(f)
		}
	}
	return out, nil
}

// findSourceFiles walks root for files with one of exts, skipping
// directories that match an exclude pattern.
func findSourceFiles(root string, exts, excludes []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && matchesAny(path, excludes) {
				return filepath.SkipDir
			}
			return nil
		}
		if hasExtension(path, exts) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func hasExtension(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if ext == e {
			return true
		}
	}
	return false
}

// matchesAny reports whether path matches a pattern as a whole, by its
// base name, or by any single path component (so "build" excludes
// everything under a build directory).
func matchesAny(path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	components := splitPath(filepath.Clean(path))
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
		for _, c := range components {
			if ok, _ := filepath.Match(pattern, c); ok {
				return true
			}
		}
	}
	return false
}

// splitPath returns the components of path, base name first.
func splitPath(path string) []string {
	var parts []string
	for {
		dir, file := filepath.Split(path)
		if file != "" {
			parts = append(parts, file)
		}
		dir = strings.TrimSuffix(dir, string(filepath.Separator))
		if dir == "" || dir == path {
			return parts
		}
		path = dir
	}
}
