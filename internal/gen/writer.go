package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"prefs-generator/internal/logctx"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Emitter receives finished files.
type Emitter interface {
	Emit(ctx context.Context, file GeneratedFile) error
}

// DirEmitter writes files into a directory. An empty Dir writes each file
// next to the package it belongs to.
type DirEmitter struct {
	Dir string
}

// Emit writes file.
func (e DirEmitter) Emit(ctx context.Context, file GeneratedFile) error {
	dir := e.Dir
	if dir == "" {
		dir = file.Dir
	}

	if err := WriteFiles([]GeneratedFile{file}, dir); err != nil {
		return err
	}

	logctx.FromContext(ctx).Info("wrote file",
		"interface", file.Interface,
		"path", filepath.Join(dir, file.Filename))

	return nil
}

// EmitAll hands every file to e, stopping at the first error.
func EmitAll(ctx context.Context, e Emitter, files []GeneratedFile) error {
	for _, file := range files {
		if err := e.Emit(ctx, file); err != nil {
			return fmt.Errorf("emitting %s: %w", file.Filename, err)
		}
	}

	return nil
}

// WriteFiles writes all generated files to the output directory.
// It creates the directory if it doesn't exist.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	// Create output directory if it doesn't exist
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		err := os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}
