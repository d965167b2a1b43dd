package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/models"
)

func renderSections(w io.Writer, s *models.Structure) {
	_, _ = fmt.Fprintf(w, "%s (%d bytes)\n", s.RootTag, s.FileSizeBytes)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Section", "Count", "Bytes", "Oversized"})
	for _, sec := range s.Sections {
		t.AppendRow(table.Row{sec.Name, sec.Count, sec.SizeBytes, yesNo(sec.Oversized)})
	}
	t.Render()
}

func renderChunks(w io.Writer, chunks []models.Chunk) {
	if len(chunks) == 0 {
		_, _ = fmt.Fprintln(w, "(0 fragments)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Path", "Element", "Records", "Bytes", "Depth", "Parent", "Oversized"})
	for _, c := range chunks {
		parent := ""
		if c.Parent != nil {
			parent = *c.Parent
		}
		t.AppendRow(table.Row{c.Path, c.Element, c.Records, c.SizeBytes, c.Depth, parent, yesNo(c.Oversized)})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d fragments)\n", len(chunks))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
