package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extractor converts source files into plain text, dispatching on the file
// extension. Parse failures degrade to a placeholder string so ingestion
// always yields a persistable document; only the initial file read can fail.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")

	switch ext {
	case "txt", "md":
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", ext, err)
		}
		return string(raw), nil
	case "pdf":
		text, err := extractPDF(path)
		if err != nil {
			return "Could not extract text from PDF", nil
		}
		return text, nil
	case "docx":
		text, err := extractDOCX(path)
		if err != nil {
			return fmt.Sprintf("Could not extract text from DOCX: %v", err), nil
		}
		return text, nil
	case "csv":
		text, err := extractCSV(path)
		if err != nil {
			return fmt.Sprintf("Could not extract text from CSV: %v", err), nil
		}
		return text, nil
	case "xlsx":
		text, err := extractXLSX(path)
		if err != nil {
			return fmt.Sprintf("Could not extract text from XLSX: %v", err), nil
		}
		return text, nil
	default:
		return fmt.Sprintf("Unsupported file type: %s", ext), nil
	}
}
