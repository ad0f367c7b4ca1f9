package reader

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/hstree/hstree/internal/schedule"
)

// DOCXReader handles schedules distributed as .docx notifications. The
// first table in the document body is taken to be the schedule.
type DOCXReader struct {
	Mapping Mapping
}

func (p *DOCXReader) Read(r io.Reader, filename string) ([]schedule.Row, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "hstree-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	for _, item := range doc.Document.Body.Items {
		table, ok := item.(*docx.Table)
		if !ok {
			continue
		}
		headers, cells := docxTableCells(table)
		if len(headers) == 0 {
			continue
		}
		return rowsFromTable(headers, cells, p.Mapping), nil
	}

	return nil, fmt.Errorf("no table found in %s", filename)
}

func docxTableCells(table *docx.Table) ([]string, [][]string) {
	var headers []string
	var cells [][]string
	for _, tr := range table.TableRows {
		var row []string
		for _, tc := range tr.TableCells {
			var buf strings.Builder
			for _, para := range tc.Paragraphs {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
				buf.WriteString(docxParagraphText(para))
			}
			row = append(row, strings.TrimSpace(buf.String()))
		}
		if len(row) == 0 {
			continue
		}
		if headers == nil {
			headers = row
			continue
		}
		cells = append(cells, row)
	}
	return headers, cells
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
