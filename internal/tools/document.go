package tools

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"
	"github.com/ledongthuc/pdf"

	"github.com/nebulus/blackbox/internal/workspace"
)

// PDFTool extracts the plain text of a PDF in the workspace, page by
// page.
type PDFTool struct {
	guard *workspace.Guard
}

// DocumentArgs represents the arguments for the document reading tools.
type DocumentArgs struct {
	Path string `json:"path"` // Path relative to the workspace root
}

// NewPDFTool creates a PDFTool confined by the given guard.
func NewPDFTool(guard *workspace.Guard) *PDFTool {
	return &PDFTool{guard: guard}
}

// Name returns the tool name.
func (t *PDFTool) Name() string {
	return "read_pdf"
}

// Description returns a description of what the tool does.
func (t *PDFTool) Description() string {
	return "Extract the text content of a PDF file in the workspace."
}

// Parameters returns the JSON Schema for the tool's parameters.
func (t *PDFTool) Parameters() map[string]interface{} {
	return documentParameters("Path of the PDF file, relative to the workspace root.")
}

// Execute reads the PDF and returns its text, pages joined by newlines.
func (t *PDFTool) Execute(_ context.Context, args string) (string, error) {
	path, fullPath, err := resolveDocument(t.guard, args)
	if err != nil {
		return "", err
	}

	f, reader, err := pdf.Open(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract page %d of %s: %w", i, path, err)
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			pages = append(pages, trimmed)
		}
	}

	if len(pages) == 0 {
		return "(no extractable text)", nil
	}
	return strings.Join(pages, "\n"), nil
}

// DocxTool extracts the paragraph text of a DOCX file in the
// workspace. DOCX is a zip archive whose word/document.xml carries the
// text in w:p paragraphs of w:t runs.
type DocxTool struct {
	guard *workspace.Guard
}

// NewDocxTool creates a DocxTool confined by the given guard.
func NewDocxTool(guard *workspace.Guard) *DocxTool {
	return &DocxTool{guard: guard}
}

// Name returns the tool name.
func (t *DocxTool) Name() string {
	return "read_docx"
}

// Description returns a description of what the tool does.
func (t *DocxTool) Description() string {
	return "Extract the text content of a DOCX file in the workspace."
}

// Parameters returns the JSON Schema for the tool's parameters.
func (t *DocxTool) Parameters() map[string]interface{} {
	return documentParameters("Path of the DOCX file, relative to the workspace root.")
}

// Execute reads the DOCX and returns its paragraphs joined by newlines.
func (t *DocxTool) Execute(_ context.Context, args string) (string, error) {
	path, fullPath, err := resolveDocument(t.guard, args)
	if err != nil {
		return "", err
	}

	archive, err := zip.OpenReader(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX %s: %w", path, err)
	}
	defer archive.Close()

	var docXML []byte
	for _, entry := range archive.File {
		if entry.Name != "word/document.xml" {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return "", fmt.Errorf("failed to read DOCX %s: %w", path, err)
		}
		docXML, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("failed to read DOCX %s: %w", path, err)
		}
		break
	}
	if docXML == nil {
		return "", fmt.Errorf("not a valid DOCX file: %s", path)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(docXML); err != nil {
		return "", fmt.Errorf("failed to parse DOCX %s: %w", path, err)
	}

	var paragraphs []string
	for _, p := range doc.FindElements("//p") {
		var runs []string
		for _, r := range p.FindElements(".//t") {
			runs = append(runs, r.Text())
		}
		if text := strings.TrimSpace(strings.Join(runs, "")); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	if len(paragraphs) == 0 {
		return "(no extractable text)", nil
	}
	return strings.Join(paragraphs, "\n"), nil
}

func documentParameters(pathDescription string) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": map[string]interface{}{
				"type":        "string",
				"description": pathDescription,
			},
		},
		"required": []string{"path"},
	}
}

func resolveDocument(guard *workspace.Guard, args string) (string, string, error) {
	var docArgs DocumentArgs
	if err := ParseArgs(args, &docArgs); err != nil {
		return "", "", fmt.Errorf("failed to parse arguments: %w", err)
	}
	if docArgs.Path == "" {
		return "", "", fmt.Errorf("path is required")
	}

	fullPath, err := guard.Resolve(docArgs.Path)
	if err != nil {
		return "", "", err
	}
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return "", "", NewNotFoundError(
				fmt.Sprintf("file not found: %s", docArgs.Path), "")
		}
		return "", "", fmt.Errorf("failed to access file: %w", err)
	}
	return docArgs.Path, fullPath, nil
}
