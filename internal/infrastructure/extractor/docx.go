package extractor

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

// docx files are OOXML zips; the visible text lives in word/document.xml as
// body > paragraph > run > text nodes.
type docxDocument struct {
	Body struct {
		Paragraphs []docxParagraph `xml:"p"`
	} `xml:"body"`
}

type docxParagraph struct {
	Runs []struct {
		Texts []string `xml:"t"`
	} `xml:"r"`
}

func extractDOCX(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx archive: %w", err)
	}
	defer archive.Close()

	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("open document part: %w", err)
		}
		defer rc.Close()

		var doc docxDocument
		if err := xml.NewDecoder(rc).Decode(&doc); err != nil {
			return "", fmt.Errorf("parse document part: %w", err)
		}

		var b strings.Builder
		for _, paragraph := range doc.Body.Paragraphs {
			for _, run := range paragraph.Runs {
				for _, text := range run.Texts {
					b.WriteString(text)
				}
			}
			b.WriteByte('\n')
		}
		return b.String(), nil
	}
	return "", errors.New("word/document.xml not found")
}
