package extractor

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF assembles a minimal uncompressed PDF with one page per text,
// computing the cross-reference table from the actual object offsets.
func buildPDF(texts ...string) []byte {
	n := len(texts)
	fontObj := 3 + 2*n

	kids := make([]string, n)
	for i := range texts {
		kids[i] = fmt.Sprintf("%d 0 R", 3+i)
	}

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n),
	}
	for i := range texts {
		objects = append(objects, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			fontObj, 3+n+i))
	}
	for _, text := range texts {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
		objects = append(objects, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}
	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, 0, len(objects))
	for i, body := range objects {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, offset := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefStart)

	return buf.Bytes()
}

func TestExtractPlainText(t *testing.T) {
	e := New()

	content := "Photosynthesis converts light into chemical energy."
	text, err := e.Extract([]byte(content), "text/plain", "bio.txt")
	require.NoError(t, err)
	assert.Equal(t, content, text)
}

func TestExtractRecognizesTextExtensionWithoutMime(t *testing.T) {
	e := New()

	text, err := e.Extract([]byte("# Notes"), "application/octet-stream", "week1.MD")
	require.NoError(t, err)
	assert.Equal(t, "# Notes", text)
}

func TestExtractEmptyTextFile(t *testing.T) {
	e := New()

	text, err := e.Extract(nil, "text/plain", "empty.txt")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtractOpaqueFormatSynthesizesPlaceholder(t *testing.T) {
	e := New()

	text, err := e.Extract([]byte{0x89, 0x50, 0x4e, 0x47}, "image/png", "diagram.png")
	require.NoError(t, err)
	assert.NotEmpty(t, text)
	assert.Contains(t, text, "diagram.png")
	assert.Contains(t, text, "image/png")
}

func TestExtractPDFJoinsPagesInOrder(t *testing.T) {
	e := New()

	data := buildPDF("Thermodynamics first law", "Entropy always increases")
	text, err := e.Extract(data, "application/pdf", "lecture.pdf")
	require.NoError(t, err)

	first := strings.Index(text, "Thermodynamics first law")
	second := strings.Index(text, "Entropy always increases")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)
	assert.Equal(t, 1, strings.Count(text, pageSeparator))
}

func TestExtractPDFSkipsBlankPages(t *testing.T) {
	e := New()

	data := buildPDF("alpha", "   ", "beta")
	text, err := e.Extract(data, "application/pdf", "sparse.pdf")
	require.NoError(t, err)

	assert.Contains(t, text, "alpha")
	assert.Contains(t, text, "beta")
	// Blank middle page drops out entirely, leaving a single join
	assert.Equal(t, 1, strings.Count(text, pageSeparator))
	assert.NotContains(t, text, pageSeparator+pageSeparator)
}

func TestExtractCorruptPDFFallsBackToPlaceholder(t *testing.T) {
	e := New()

	text, err := e.Extract([]byte("not really a pdf"), "application/pdf", "lecture.pdf")
	require.NoError(t, err)
	assert.Contains(t, text, "lecture.pdf")
}

func TestJoinPagesUsesBlankLineSeparatorInOrder(t *testing.T) {
	joined := joinPages([]string{"page one", "page two", "page three"})

	assert.Equal(t, "page one\n\npage two\n\npage three", joined)
	assert.Equal(t, 2, strings.Count(joined, pageSeparator))
}

func TestIsPlainText(t *testing.T) {
	assert.True(t, isPlainText("text/markdown", "x.bin"))
	assert.True(t, isPlainText("application/octet-stream", "notes.txt"))
	assert.False(t, isPlainText("application/pdf", "slides.pdf"))
}
