// Package validation performs pre-flight checks on input and output locations
// so that problems surface before any report file is created.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"attendcli/internal/dataprocessing"
	apperrors "attendcli/internal/errors"
)

// lockFilePrefix marks the owner files spreadsheet programs leave next to an
// open workbook
const lockFilePrefix = "~$"

// FileValidator checks files and directories used by a run
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger.With("component", "validation"),
	}
}

// ValidateInputDirectory checks that dir exists and is a directory
func (v *FileValidator) ValidateInputDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		v.logger.Error("Input directory is not accessible",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewAppError(apperrors.ErrTypeDiscovery, "input directory is not accessible", err).
			WithContext("dir", dir)
	}
	if !info.IsDir() {
		v.logger.Error("Input path is not a directory",
			slog.String("path", dir))
		return apperrors.NewAppError(apperrors.ErrTypeDiscovery, fmt.Sprintf("%s is not a directory", dir), nil).
			WithContext("dir", dir)
	}
	return nil
}

// ValidateInputFile checks that path is a readable table in a supported
// format and not a spreadsheet lock file
func (v *FileValidator) ValidateInputFile(path string) error {
	base := filepath.Base(path)
	if strings.HasPrefix(base, lockFilePrefix) {
		v.logger.Warn("Refusing spreadsheet lock file",
			slog.String("file", path))
		return apperrors.NewParsingError(fmt.Sprintf("%s is a spreadsheet lock file", base), nil).
			WithContext("file", path)
	}

	if !dataprocessing.IsSupported(path) {
		ext := strings.ToLower(filepath.Ext(path))
		v.logger.Error("Unsupported input file type",
			slog.String("file", path),
			slog.String("extension", ext))
		return apperrors.NewParsingError(fmt.Sprintf("unsupported file type %q", ext), nil).
			WithContext("file", path)
	}

	// Check if file is readable by opening it
	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewParsingError("file is not readable", err).
			WithContext("file", path)
	}
	file.Close()

	v.logger.Debug("Input file validated",
		slog.String("file", path))
	return nil
}

// ValidateOutputDirectory ensures dir exists or can be created and accepts
// new files
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewOutputError("failed to create output directory", err).
			WithContext("dir", dir)
	}

	// Verify it's writable by creating a scratch file
	scratch, err := os.CreateTemp(dir, ".write_test_*")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewOutputError("output directory is not writable", err).
			WithContext("dir", dir)
	}
	scratch.Close()
	os.Remove(scratch.Name())

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}
