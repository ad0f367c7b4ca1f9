package reader

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/hstree/hstree/internal/schedule"
)

// HTMLReader handles schedules published as HTML tables. The first
// <table> in the document is taken to be the schedule.
type HTMLReader struct {
	Mapping Mapping
}

func (p *HTMLReader) Read(r io.Reader, filename string) ([]schedule.Row, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	table := findTable(doc)
	if table == nil {
		return nil, fmt.Errorf("no table found in %s", filename)
	}

	var headers []string
	var cells [][]string
	for _, tr := range findAll(table, "tr") {
		var row []string
		for _, cell := range findCells(tr) {
			row = append(row, textContent(cell))
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

	return rowsFromTable(headers, cells, p.Mapping), nil
}

func findTable(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "table" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTable(c); t != nil {
			return t
		}
	}
	return nil
}

// findAll collects descendant elements with the given tag, in document order.
func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return out
}

func findCells(tr *html.Node) []*html.Node {
	var out []*html.Node
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			out = append(out, c)
		}
	}
	return out
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}
