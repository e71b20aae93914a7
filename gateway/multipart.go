package gateway

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
)

// Part is one field of a multipart/form-data upload.
// Exactly one content source should be set; File takes precedence, then
// Reader, then Data, then Value.
type Part struct {
	// Name is the form field name, passed through verbatim.
	Name string
	// Filename is sent in the Content-Disposition. Parts with a filename
	// (or a File) are encoded as file fields.
	Filename string
	// ContentType of a file field. Defaults to application/octet-stream.
	ContentType string
	// Value is a plain string field.
	Value string
	// Data is in-memory content.
	Data []byte
	// Reader streams content.
	Reader io.Reader
	// File is a path opened just before the request and closed after it.
	File string
}

func (p Part) isFile() bool {
	return p.Filename != "" || p.File != ""
}

// openedParts holds the files opened for one request.
type openedParts struct {
	files map[int]*os.File
}

// openParts opens every File part. The caller must call close.
func openParts(parts []Part) (*openedParts, error) {
	op := &openedParts{files: make(map[int]*os.File)}
	for i, p := range parts {
		if p.File == "" {
			continue
		}
		f, err := os.Open(p.File)
		if err != nil {
			op.close()
			return nil, fmt.Errorf("open part %q: %w", p.Name, err)
		}
		op.files[i] = f
	}
	return op, nil
}

func (op *openedParts) close() {
	if op == nil {
		return
	}
	for _, f := range op.files {
		_ = f.Close()
	}
}

// encodeMultipart builds the body and returns it with its boundary-bearing content type.
func encodeMultipart(parts []Part, opened *openedParts) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for i, p := range parts {
		if p.Name == "" {
			return nil, "", errors.New("multipart part without name")
		}

		var src io.Reader
		switch {
		case opened != nil && opened.files[i] != nil:
			src = opened.files[i]
		case p.Reader != nil:
			src = p.Reader
		case p.Data != nil:
			src = bytes.NewReader(p.Data)
		default:
			src = strings.NewReader(p.Value)
		}

		if !p.isFile() {
			fw, err := w.CreateFormField(p.Name)
			if err != nil {
				return nil, "", err
			}
			if _, err := io.Copy(fw, src); err != nil {
				return nil, "", err
			}
			continue
		}

		filename := p.Filename
		if filename == "" {
			filename = filepath.Base(p.File)
		}

		var part io.Writer
		var err error
		if p.ContentType != "" {
			header := make(textproto.MIMEHeader)
			header.Set("Content-Disposition",
				`form-data; name="`+escapeQuotes(p.Name)+`"; filename="`+escapeQuotes(filename)+`"`)
			header.Set("Content-Type", p.ContentType)
			part, err = w.CreatePart(header)
		} else {
			part, err = w.CreateFormFile(p.Name, filename)
		}
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, src); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
