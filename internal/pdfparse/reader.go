package pdfparse

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// openReader opens the document bytes. The pdf library panics on some
// malformed inputs, so both errors and panics become a ParseError.
func openReader(content []byte) (r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &ParseError{Err: fmt.Errorf("malformed document: %v", rec)}
		}
	}()
	if len(content) == 0 {
		return nil, &ParseError{Err: fmt.Errorf("empty document")}
	}
	reader, oerr := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if oerr != nil {
		return nil, &ParseError{Err: oerr}
	}
	return reader, nil
}

// pageContent pulls the text lines and positioned rows of one page.
// Positioned rows are preferred because they preserve line structure for
// the label scans; plain text is the degraded path. Failures, including
// library panics, stay contained to the page.
func pageContent(r *pdf.Reader, num int) (lines []string, rows pdf.Rows, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			lines, rows = nil, nil
			err = fmt.Errorf("page %d: %v", num, rec)
		}
	}()

	page := r.Page(num)
	if page.V.IsNull() {
		return nil, nil, nil
	}

	rows, rerr := page.GetTextByRow()
	if rerr == nil && len(rows) > 0 {
		for _, row := range rows {
			if cells := clusterCells(row.Content); len(cells) > 0 {
				lines = append(lines, strings.Join(cells, " "))
			}
		}
		return lines, rows, nil
	}

	text, terr := page.GetPlainText(nil)
	if terr != nil {
		if rerr != nil {
			return nil, nil, fmt.Errorf("page %d: %w", num, rerr)
		}
		return nil, nil, fmt.Errorf("page %d: %w", num, terr)
	}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil, nil
}
