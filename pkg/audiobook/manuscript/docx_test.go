package manuscript

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testStylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>
  <w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/></w:style>
  <w:style w:type="paragraph" w:styleId="Otsikko2"><w:name w:val="Otsikko 2"/></w:style>
  <w:style w:type="character" w:styleId="Strong"><w:name w:val="Strong"/></w:style>
</w:styles>`

const testDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:pPr><w:pStyle w:val="Heading1"/><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr><w:r><w:t>Luku 1</w:t></w:r></w:p>
    <w:p><w:r><w:t xml:space="preserve">Hello  </w:t></w:r><w:r><w:rPr><w:rStyle w:val="Strong"/></w:rPr><w:t>world.</w:t></w:r></w:p>
    <w:tbl><w:tr><w:tc><w:p><w:r><w:t>In a table</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
    <w:p/>
    <w:p><w:r><w:t>Line one</w:t><w:br/><w:t>line two</w:t></w:r></w:p>
    <w:p><w:pPr><w:pStyle w:val="Otsikko2"/></w:pPr><w:r><w:t>Toinen</w:t></w:r></w:p>
    <w:p><w:r><w:t>Bye.</w:t></w:r></w:p>
  </w:body>
</w:document>`

const testTOCDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:sdt>
      <w:sdtPr><w:docPartObj><w:docPartGallery w:val="Table of Contents"/><w:docPartUnique/></w:docPartObj></w:sdtPr>
      <w:sdtContent>
        <w:p><w:pPr><w:pStyle w:val="TOCHeading"/></w:pPr><w:r><w:t>Sisällys</w:t></w:r></w:p>
        <w:p><w:pPr><w:pStyle w:val="TOC1"/></w:pPr><w:r><w:t>Luku 1</w:t></w:r><w:r><w:tab/><w:t>3</w:t></w:r></w:p>
        <w:p><w:pPr><w:pStyle w:val="TOC1"/></w:pPr><w:r><w:t>Luku 2</w:t></w:r><w:r><w:tab/><w:t>7</w:t></w:r></w:p>
      </w:sdtContent>
    </w:sdt>
    <w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Luku 1</w:t></w:r></w:p>
    <w:p><w:r><w:t>Hello world.</w:t></w:r></w:p>
    <w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Luku 2</w:t></w:r></w:p>
    <w:p><w:r><w:t>Bye.</w:t></w:r></w:p>
  </w:body>
</w:document>`

// buildDocx はテスト用の最小限の DOCX (ZIP) を組み立てます。
func buildDocx(t *testing.T, parts map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestReadDocx(t *testing.T) {
	t.Run("Should extract body paragraphs with their style names", func(t *testing.T) {
		data := buildDocx(t, map[string]string{
			docxDocumentPart: testDocumentXML,
			docxStylesPart:   testStylesXML,
		})

		items, err := ReadDocx(data, "book.docx")
		require.NoError(t, err)
		assert.Equal(t, []SourceItem{
			{StyleHint: "Heading 1", Text: "Luku 1"},
			{StyleHint: "Normal", Text: "Hello world."},
			{StyleHint: "Normal", Text: "Line one\nline two"},
			{StyleHint: "Otsikko 2", Text: "Toinen"},
			{StyleHint: "Normal", Text: "Bye."},
		}, items)
	})

	t.Run("Should use style ids when styles.xml is missing", func(t *testing.T) {
		data := buildDocx(t, map[string]string{docxDocumentPart: testDocumentXML})

		items, err := ReadDocx(data, "book.docx")
		require.NoError(t, err)
		require.NotEmpty(t, items)
		assert.Equal(t, "Heading1", items[0].StyleHint)
		assert.Equal(t, "", items[1].StyleHint)
	})

	t.Run("Should reject data that is not a zip archive", func(t *testing.T) {
		_, err := ReadDocx([]byte("plain text"), "broken.docx")
		var target *ErrInvalidDocument
		require.ErrorAs(t, err, &target)
		assert.Equal(t, "broken.docx", target.Path)
	})

	t.Run("Should reject an archive without a document part", func(t *testing.T) {
		data := buildDocx(t, map[string]string{"word/other.xml": "<x/>"})

		_, err := ReadDocx(data, "empty.docx")
		var target *ErrInvalidDocument
		require.ErrorAs(t, err, &target)
	})

	t.Run("Should reject malformed document XML", func(t *testing.T) {
		data := buildDocx(t, map[string]string{docxDocumentPart: "<w:document><w:body><w:p>"})

		_, err := ReadDocx(data, "bad.docx")
		var target *ErrInvalidDocument
		require.ErrorAs(t, err, &target)
	})
}

func TestReadDocx_Segmentation(t *testing.T) {
	data := buildDocx(t, map[string]string{
		docxDocumentPart: testDocumentXML,
		docxStylesPart:   testStylesXML,
	})

	items, err := ReadDocx(data, "book.docx")
	require.NoError(t, err)

	chapters := NewSegmenter(nil).SegmentStructured(items)
	assert.Equal(t, []Chapter{
		{Title: "Luku 1", Text: "Hello world.\n\nLine one\nline two"},
		{Title: "Toinen", Text: "Bye."},
	}, chapters)
}

func TestReadDocx_ContentControls(t *testing.T) {
	data := buildDocx(t, map[string]string{
		docxDocumentPart: testTOCDocumentXML,
		docxStylesPart:   testStylesXML,
	})

	t.Run("Should skip paragraphs inside a table of contents", func(t *testing.T) {
		items, err := ReadDocx(data, "book.docx")
		require.NoError(t, err)
		assert.Equal(t, []SourceItem{
			{StyleHint: "Heading 1", Text: "Luku 1"},
			{StyleHint: "Normal", Text: "Hello world."},
			{StyleHint: "Heading 1", Text: "Luku 2"},
			{StyleHint: "Normal", Text: "Bye."},
		}, items)
	})

	t.Run("Should not turn the table of contents into a chapter", func(t *testing.T) {
		items, err := ReadDocx(data, "book.docx")
		require.NoError(t, err)
		assert.Equal(t, []Chapter{
			{Title: "Luku 1", Text: "Hello world."},
			{Title: "Luku 2", Text: "Bye."},
		}, NewSegmenter(nil).SegmentStructured(items))
	})
}

func TestUiStyleName(t *testing.T) {
	assert.Equal(t, "Heading 1", uiStyleName("heading 1"))
	assert.Equal(t, "Normal", uiStyleName("normal"))
	assert.Equal(t, "Title", uiStyleName("title"))
	assert.Equal(t, "Otsikko 1", uiStyleName("Otsikko 1"))
}
