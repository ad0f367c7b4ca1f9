package reader

import (
	"strings"
	"testing"
)

const sampleMarkdown = `# Chapter 25

Some introductory text.

| HS Code | Item Description | Level | Remark |
|---------|------------------|-------|--------|
|         | Chapter 25       |       |        |
| 2501    | Salt             | -     | Tariff |
`

func TestMarkdownReader_PipeTableBecomesRows(t *testing.T) {
	p := &MarkdownReader{Mapping: DefaultMapping()}
	rows, err := p.Read(strings.NewReader(sampleMarkdown), "chapter25.md")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1].Code != "2501" || rows[1].Description != "Salt" || rows[1].RawLevel != "-" {
		t.Errorf("unexpected row: %+v", rows[1])
	}
}

func TestMarkdownReader_NoTable(t *testing.T) {
	p := &MarkdownReader{Mapping: DefaultMapping()}
	if _, err := p.Read(strings.NewReader("# Just a heading\n\nNo tables here.\n"), "x.md"); err == nil {
		t.Fatal("expected error for document without a table")
	}
}

func TestMapping_Normalize(t *testing.T) {
	m := DefaultMapping()
	cases := map[string]string{
		"  HS Code ":                        "hs_code",
		"Item  Description":                 "item_description",
		"10%SWS":                            "sws_10pct",
		"Total duty with SWS of 10% on BCD": "total_duty_sws_10pct_on_bcd",
		"Some Custom (Col)":                 "some_custom__col_",
	}
	for in, want := range cases {
		if got := m.Normalize(in); got != want {
			t.Errorf("%q: expected %q, got %q", in, want, got)
		}
	}
}

func TestMapping_Merge(t *testing.T) {
	m := DefaultMapping().Merge(map[string]string{"Tariff Item": "hs_code"})
	if got := m.Normalize("Tariff Item"); got != "hs_code" {
		t.Errorf("expected merged mapping to win, got %q", got)
	}
	if got := m.Normalize("HS Code"); got != "hs_code" {
		t.Errorf("expected base mapping retained, got %q", got)
	}
}
