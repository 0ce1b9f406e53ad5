package tools

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nebulus/blackbox/internal/workspace"
)

const wordDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Quarterly summary</w:t></w:r></w:p>
    <w:p><w:r><w:t>Revenue grew </w:t></w:r><w:r><w:t>by 12 percent.</w:t></w:r></w:p>
    <w:p><w:r><w:t>   </w:t></w:r></w:p>
    <w:p><w:r><w:t>Costs were flat.</w:t></w:r></w:p>
  </w:body>
</w:document>`

func writeDocx(t *testing.T, dir, name, documentXML string) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	entry, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = entry.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	require.NoError(t, os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0644))
}

func newDocGuard(t *testing.T) *workspace.Guard {
	t.Helper()
	guard, err := workspace.NewGuard(t.TempDir())
	require.NoError(t, err)
	return guard
}

func TestDocxToolExtractsParagraphs(t *testing.T) {
	guard := newDocGuard(t)
	writeDocx(t, guard.Root(), "report.docx", wordDocumentXML)

	tool := NewDocxTool(guard)
	result, err := tool.Execute(context.Background(), `{"path": "report.docx"}`)
	require.NoError(t, err)

	assert.Equal(t, "Quarterly summary\nRevenue grew by 12 percent.\nCosts were flat.", result)
}

func TestDocxToolEmptyDocument(t *testing.T) {
	guard := newDocGuard(t)
	writeDocx(t, guard.Root(), "empty.docx",
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body/></w:document>`)

	tool := NewDocxTool(guard)
	result, err := tool.Execute(context.Background(), `{"path": "empty.docx"}`)
	require.NoError(t, err)
	assert.Equal(t, "(no extractable text)", result)
}

func TestDocxToolRejectsNonZip(t *testing.T) {
	guard := newDocGuard(t)
	require.NoError(t, os.WriteFile(filepath.Join(guard.Root(), "fake.docx"), []byte("plain text"), 0644))

	tool := NewDocxTool(guard)
	_, err := tool.Execute(context.Background(), `{"path": "fake.docx"}`)
	require.Error(t, err)
}

func TestDocxToolMissingDocumentXML(t *testing.T) {
	guard := newDocGuard(t)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entry, err := zw.Create("unrelated.txt")
	require.NoError(t, err)
	_, err = entry.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(filepath.Join(guard.Root(), "odd.docx"), buf.Bytes(), 0644))

	tool := NewDocxTool(guard)
	_, err = tool.Execute(context.Background(), `{"path": "odd.docx"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid DOCX file")
}

func TestPDFToolMissingFile(t *testing.T) {
	guard := newDocGuard(t)

	tool := NewPDFTool(guard)
	_, err := tool.Execute(context.Background(), `{"path": "missing.pdf"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestPDFToolRejectsNonPDF(t *testing.T) {
	guard := newDocGuard(t)
	require.NoError(t, os.WriteFile(filepath.Join(guard.Root(), "fake.pdf"), []byte("not a pdf"), 0644))

	tool := NewPDFTool(guard)
	_, err := tool.Execute(context.Background(), `{"path": "fake.pdf"}`)
	require.Error(t, err)
}

func TestDocumentToolsDenyEscape(t *testing.T) {
	guard := newDocGuard(t)

	for _, tool := range []Tool{NewPDFTool(guard), NewDocxTool(guard)} {
		_, err := tool.Execute(context.Background(), `{"path": "../../etc/passwd"}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access denied")
	}
}
