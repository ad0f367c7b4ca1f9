package reader

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/hstree/hstree/internal/schedule"
)

// PDFReader handles schedules published as PDF. It tries the Go
// library first, then falls back to pdftotext if available. Rows are
// recovered from layout-preserved text by splitting on column gaps,
// which is inherently best-effort.
type PDFReader struct {
	Mapping           Mapping
	FallbackPdftotext bool
}

var columnGapRe = regexp.MustCompile(`\s{2,}`)

func (p *PDFReader) Read(r io.Reader, filename string) ([]schedule.Row, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "hstree-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	text, err := extractPDFText(tmpPath)
	if (err != nil || strings.TrimSpace(text) == "") && p.FallbackPdftotext {
		text, err = extractPdftotext(tmpPath)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	headers, cells := tableFromLines(strings.Split(text, "\n"), p.Mapping)
	if len(headers) == 0 {
		return nil, fmt.Errorf("no schedule table found in %s", filename)
	}

	return rowsFromTable(headers, cells, p.Mapping), nil
}

// tableFromLines locates the header line (two or more known column
// names) and splits every following non-blank line on runs of spaces.
func tableFromLines(lines []string, m Mapping) ([]string, [][]string) {
	var headers []string
	var cells [][]string
	for _, line := range lines {
		line = strings.TrimRight(line, " \r\f")
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := columnGapRe.Split(strings.TrimSpace(line), -1)
		if headers == nil {
			if knownColumns(parts, m) >= 2 {
				headers = parts
			}
			continue
		}
		cells = append(cells, parts)
	}
	return headers, cells
}

func knownColumns(parts []string, m Mapping) int {
	n := 0
	for _, p := range parts {
		if _, ok := m.Columns[strings.TrimSpace(p)]; ok {
			n++
		}
	}
	return n
}

func extractPDFText(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if i > 1 {
			buf.WriteString("\n")
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
