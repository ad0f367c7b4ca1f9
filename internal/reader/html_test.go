package reader

import (
	"strings"
	"testing"
)

const sampleHTML = `<html><body>
<h1>Chapter 25</h1>
<table>
  <thead>
    <tr><th>HS Code</th><th>Item Description</th><th>Level</th><th>Remark</th></tr>
  </thead>
  <tbody>
    <tr><td></td><td>Chapter 25</td><td></td><td></td></tr>
    <tr><td>2501</td><td>Salt</td><td>-</td><td>Tariff</td></tr>
  </tbody>
</table>
</body></html>`

func TestHTMLReader_FirstTableBecomesRows(t *testing.T) {
	p := &HTMLReader{Mapping: DefaultMapping()}
	rows, err := p.Read(strings.NewReader(sampleHTML), "chapter25.html")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1].Code != "2501" || rows[1].RawLevel != "-" || rows[1].Remark != "Tariff" {
		t.Errorf("unexpected row: %+v", rows[1])
	}
}

func TestHTMLReader_NoTable(t *testing.T) {
	p := &HTMLReader{Mapping: DefaultMapping()}
	if _, err := p.Read(strings.NewReader("<html><body><p>hello</p></body></html>"), "x.html"); err == nil {
		t.Fatal("expected error for document without a table")
	}
}
