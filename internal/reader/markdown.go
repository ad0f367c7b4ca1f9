package reader

import (
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/hstree/hstree/internal/schedule"
)

// MarkdownReader handles schedules written as Markdown pipe tables,
// using goldmark with the table extension. The first table in the
// document is taken to be the schedule.
type MarkdownReader struct {
	Mapping Mapping
}

func (p *MarkdownReader) Read(r io.Reader, filename string) ([]schedule.Row, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader(src))

	var table *east.Table
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*east.Table); ok && table == nil {
			table = t
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	if table == nil {
		return nil, fmt.Errorf("no table found in %s", filename)
	}

	var headers []string
	var cells [][]string
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		var texts []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			texts = append(texts, string(cell.Text(src)))
		}
		switch row.(type) {
		case *east.TableHeader:
			headers = texts
		case *east.TableRow:
			cells = append(cells, texts)
		}
	}

	return rowsFromTable(headers, cells, p.Mapping), nil
}
