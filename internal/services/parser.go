package services

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrUnsupportedFileType is returned for extensions other than pdf, docx and txt.
	ErrUnsupportedFileType = errors.New("unsupported file type")
	// ErrEmptyDocument is returned when no text could be extracted.
	ErrEmptyDocument = errors.New("no text content found in document")
)

// SupportedFileTypes lists the accepted document extensions without the dot.
var SupportedFileTypes = []string{"pdf", "docx", "txt"}

type DocumentParser interface {
	ExtractText(filePath, fileType string) (*ParsedDocument, error)
}

type ParsedDocument struct {
	Text      string
	PageCount int
	FilePath  string
	FileType  string
}

type documentParser struct{}

func NewDocumentParser() DocumentParser {
	return &documentParser{}
}

// FileTypeOf returns the lowercase extension of name without the dot.
func FileTypeOf(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

// IsSupportedFileType reports whether fileType can be parsed.
func IsSupportedFileType(fileType string) bool {
	for _, t := range SupportedFileTypes {
		if t == fileType {
			return true
		}
	}
	return false
}

// ExtractText implements DocumentParser.
func (p *documentParser) ExtractText(filePath, fileType string) (*ParsedDocument, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	var (
		text  string
		pages = 1
		err   error
	)

	switch strings.ToLower(fileType) {
	case "pdf":
		text, pages, err = extractPDF(filePath)
	case "docx":
		text, err = extractDOCX(filePath)
	case "txt":
		text, err = extractTXT(filePath)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFileType, fileType)
	}
	if err != nil {
		return nil, err
	}

	text = CleanText(text)
	if text == "" {
		return nil, ErrEmptyDocument
	}

	return &ParsedDocument{
		Text:      text,
		PageCount: pages,
		FilePath:  filePath,
		FileType:  fileType,
	}, nil
}

func extractPDF(filePath string) (string, int, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Keep going; one broken page should not lose the document.
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String(), totalPage, nil
}

// extractDOCX reads the paragraphs of word/document.xml.
func extractDOCX(filePath string) (string, error) {
	archive, err := zip.OpenReader(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer archive.Close()

	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open DOCX body: %w", err)
		}
		defer rc.Close()

		return docxText(rc)
	}

	return "", fmt.Errorf("failed to parse DOCX: word/document.xml not found")
}

func docxText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var (
		builder strings.Builder
		inText  bool
	)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse DOCX body: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				builder.WriteString("\t")
			case "br":
				builder.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				builder.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				builder.Write(t)
			}
		}
	}

	return builder.String(), nil
}

func extractTXT(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("failed to read text file: content is not valid UTF-8")
	}
	return string(data), nil
}

// CleanText trims every line and collapses runs of blank lines into a single
// paragraph break.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var cleanedLines []string

	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			blank = len(cleanedLines) > 0
			continue
		}
		if blank {
			cleanedLines = append(cleanedLines, "")
			blank = false
		}
		cleanedLines = append(cleanedLines, line)
	}

	return strings.Join(cleanedLines, "\n")
}
