package resumepdf

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

var ErrNoText = errors.New("pdf contains no extractable text")

// MaxBytes caps accepted uploads; resumes are small documents.
const MaxBytes = 5 << 20

// Extract pulls the plain text out of a PDF resume upload.
func Extract(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrNoText
	}
	if len(data) > MaxBytes {
		return "", errors.New("pdf too large")
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", err
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}
