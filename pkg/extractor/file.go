package extractor

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

const (
	kindText = "txt"
	kindPDF  = "pdf"
	kindDocx = "docx"

	docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Files extracts text from .txt, .pdf and .docx uploads.
type Files struct {
	maxBytes int
}

var _ FileExtractor = &Files{}

func NewFiles(maxBytes int) *Files {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Files{maxBytes: maxBytes}
}

// ContentType sniffs the MIME type of an upload.
func ContentType(data []byte) string {
	return mimetype.Detect(data).String()
}

func (f *Files) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) > f.maxBytes {
		return "", fmt.Errorf("%w: %s is larger than %d bytes", ErrExtraction, filename, f.maxBytes)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		text string
		err  error
	)
	switch kind := detectKind(filename, data); kind {
	case kindText:
		text, err = extractText(data)
	case kindPDF:
		text, err = extractPDF(data)
	case kindDocx:
		text, err = extractDocx(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, filename)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrExtraction, filename, err)
	}
	return strings.TrimSpace(text), nil
}

// detectKind trusts the extension first and falls back to content sniffing
// for uploads without one.
func detectKind(filename string, data []byte) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md":
		return kindText
	case ".pdf":
		return kindPDF
	case ".docx":
		return kindDocx
	case "":
	default:
		return ""
	}

	mtype := mimetype.Detect(data)
	switch {
	case mtype.Is("application/pdf"):
		return kindPDF
	case mtype.Is(docxMIME):
		return kindDocx
	case mtype.Is("text/plain"):
		return kindText
	}
	return ""
}

func extractText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file is not valid UTF-8")
	}
	return string(data), nil
}

func extractPDF(data []byte) (text string, err error) {
	// The pdf reader panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	out, err := io.ReadAll(plain)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func extractDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	for _, file := range zr.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()
		return docxBodyText(rc)
	}
	return "", fmt.Errorf("word/document.xml not found")
}

// docxBodyText collects <w:t> runs, one line per <w:p> paragraph.
func docxBodyText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var (
		sb     strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}
