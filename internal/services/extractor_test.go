package services

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ats-analyzer/internal/testutil"
)

// writeTestDOCX writes a minimal DOCX holding documentXML.
func writeTestDOCX(t *testing.T, path, documentXML string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	contentTypes, err := w.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = contentTypes.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`))
	require.NoError(t, err)

	rels, err := w.Create("word/_rels/document.xml.rels")
	require.NoError(t, err)
	_, err = rels.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`))
	require.NoError(t, err)

	doc, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = doc.Write([]byte(documentXML))
	require.NoError(t, err)

	require.NoError(t, w.Close())
}

func TestExtractText_PlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Python, SQL"), 0o644))

	text, err := NewTextExtractor().ExtractText(path)

	require.NoError(t, err)
	assert.Equal(t, "Python, SQL", text)
}

func TestExtractText_EmptyDocumentIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	text, err := NewTextExtractor().ExtractText(path)

	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtractText_DOCX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.docx")
	writeTestDOCX(t, path, `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Senior Go Engineer</w:t></w:r></w:p>
<w:p><w:r><w:t>Go &amp; PostgreSQL</w:t></w:r></w:p>
</w:body>
</w:document>`)

	text, err := NewTextExtractor().ExtractText(path)

	require.NoError(t, err)
	assert.Contains(t, text, "Senior Go Engineer")
	assert.Contains(t, text, "Go & PostgreSQL")
	assert.NotContains(t, text, "<w:t>")
}

func TestExtractText_PDF(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		extraPages int
		pages      []string
		want       string
	}{
		{
			name:  "pages in order",
			file:  "resume.pdf",
			pages: []string{"Python SQL", "Kubernetes"},
			want:  "\nPython SQL\nKubernetes",
		},
		{
			name:       "page without content and null page add nothing",
			file:       "resume.pdf",
			extraPages: 1,
			pages:      []string{"Python SQL", "", "Kubernetes"},
			want:       "\nPython SQL\nKubernetes",
		},
		{
			name:  "unknown extension is read as pdf",
			file:  "resume",
			pages: []string{"Go"},
			want:  "\nGo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, testutil.PDF(tt.extraPages, tt.pages...), 0o644))

			text, err := NewTextExtractor().ExtractText(path)

			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestExtractText_Failures(t *testing.T) {
	dir := t.TempDir()
	corruptPDF := filepath.Join(dir, "corrupt.pdf")
	require.NoError(t, os.WriteFile(corruptPDF, []byte("definitely not a pdf"), 0o644))
	corruptDOCX := filepath.Join(dir, "corrupt.docx")
	require.NoError(t, os.WriteFile(corruptDOCX, []byte("not a zip"), 0o644))

	tests := []struct {
		name string
		path string
	}{
		{name: "missing pdf", path: filepath.Join(dir, "missing.pdf")},
		{name: "missing text", path: filepath.Join(dir, "missing.txt")},
		{name: "corrupt pdf", path: corruptPDF},
		{name: "corrupt docx", path: corruptDOCX},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := NewTextExtractor().ExtractText(tt.path)
			assert.Error(t, err)
			assert.Empty(t, text)
		})
	}
}
