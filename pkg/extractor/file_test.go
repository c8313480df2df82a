package extractor

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`))
	require.NoError(t, err)
	w, err = zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestFiles_Text(t *testing.T) {
	f := NewFiles(0)
	text, err := f.Extract(context.Background(), "notes.TXT", []byte("\xef\xbb\xbf  hello world \n"))
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)

	_, err = f.Extract(context.Background(), "bad.txt", []byte{0xff, 0xfe, 0xfd})
	assert.ErrorIs(t, err, ErrExtraction)
}

func TestFiles_Docx(t *testing.T) {
	data := buildDocx(t, `<w:p><w:r><w:t>First</w:t></w:r><w:r><w:tab/><w:t>line</w:t></w:r></w:p><w:p><w:r><w:t>Second</w:t></w:r></w:p>`)

	text, err := NewFiles(0).Extract(context.Background(), "report.docx", data)
	require.NoError(t, err)
	assert.Equal(t, "First\tline\nSecond", text)
}

func TestFiles_Rejections(t *testing.T) {
	f := NewFiles(16)

	_, err := f.Extract(context.Background(), "image.png", []byte("\x89PNG"))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = f.Extract(context.Background(), "big.txt", bytes.Repeat([]byte("a"), 17))
	assert.ErrorIs(t, err, ErrExtraction)

	_, err = f.Extract(context.Background(), "broken.docx", []byte("not a zip"))
	assert.ErrorIs(t, err, ErrExtraction)

	_, err = f.Extract(context.Background(), "broken.pdf", []byte("%PDF-1.4 garbage"))
	assert.ErrorIs(t, err, ErrExtraction)
}

func TestFiles_SniffsWhenNoExtension(t *testing.T) {
	text, err := NewFiles(0).Extract(context.Background(), "upload", []byte("plain words"))
	require.NoError(t, err)
	assert.Equal(t, "plain words", text)
	assert.Equal(t, "text/plain; charset=utf-8", ContentType([]byte("plain words")))
}
