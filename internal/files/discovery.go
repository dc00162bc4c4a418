package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	apperrors "attendcli/internal/errors"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
	logger   *slog.Logger
}

// NewDiscovery creates a new file discovery instance rooted at basePath
func NewDiscovery(basePath string, logger *slog.Logger) *Discovery {
	if logger == nil {
		logger = slog.Default()
	}
	return &Discovery{basePath: basePath, logger: logger}
}

// FindFilesByPattern finds regular files matching a glob pattern, sorted by
// name so the result is stable across platforms.
func (d *Discovery) FindFilesByPattern(pattern string) ([]FileInfo, error) {
	searchPattern := filepath.Join(d.basePath, pattern)

	matches, err := filepath.Glob(searchPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
	}
	sort.Strings(matches)

	var files []FileInfo
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, FileInfo{
			Path:    match,
			Name:    filepath.Base(match),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return files, nil
}

// ResolveSingle returns the single input file for pattern. When several files
// match, the first in lexicographic order wins and the rest are logged.
// No match is a discovery error.
func (d *Discovery) ResolveSingle(pattern string) (FileInfo, error) {
	files, err := d.FindFilesByPattern(pattern)
	if err != nil {
		return FileInfo{}, apperrors.NewAppError(apperrors.ErrTypeDiscovery, "pattern lookup failed", err).
			WithContext("pattern", pattern)
	}

	chosen, ok := FirstByName(files)
	if !ok {
		return FileInfo{}, apperrors.NewDiscoveryError(pattern, d.basePath)
	}

	if len(files) > 1 {
		ignored := make([]string, 0, len(files)-1)
		for _, f := range files[1:] {
			ignored = append(ignored, f.Name)
		}
		d.logger.Warn("Multiple files match pattern, using first in sorted order",
			slog.String("pattern", pattern),
			slog.String("chosen", chosen.Name),
			slog.Any("ignored", ignored))
	}

	d.logger.Info("Input file resolved",
		slog.String("pattern", pattern),
		slog.String("path", chosen.Path),
		slog.Int64("size", chosen.Size))

	return chosen, nil
}

// ResolveExplicit validates a configured path and returns its FileInfo.
// Relative paths are taken relative to the discovery base path.
func (d *Discovery) ResolveExplicit(path string) (FileInfo, error) {
	fullPath := path
	if !filepath.IsAbs(path) {
		fullPath = filepath.Join(d.basePath, path)
	}

	info, err := os.Stat(fullPath)
	if err != nil || info.IsDir() {
		return FileInfo{}, apperrors.NewDiscoveryError(path, d.basePath)
	}

	return FileInfo{
		Path:    fullPath,
		Name:    info.Name(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// FirstByName returns the file whose name sorts first
func FirstByName(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}

	first := files[0]
	for _, file := range files[1:] {
		if file.Name < first.Name {
			first = file
		}
	}

	return first, true
}
