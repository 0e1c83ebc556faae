package gen

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"prefs-generator/internal/analyze"
)

// writeDebugUnformatted writes unformatted code to a sidecar file next to the
// intended output. This is best-effort and should never make generation fail
// harder.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" || len(content) == 0 {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}
	// Keep it a .go file so editors can syntax highlight, but avoid colliding with
	// real output. It must never be compiled with the package.
	debugName := strings.TrimSuffix(filename, ".go") + ".unformatted.go"
	p := filepath.Join(outDir, debugName)
	content = bytes.Replace(content, []byte("//go:build !"+analyze.GenerateTag), []byte("//go:build ignore"), 1)

	return os.WriteFile(p, content, filePerm)
}
