// Package export turns a fully resolved run-of-show document into a visual
// artifact.  It consumes the flattened column list and the resolved cell
// colors from the core model and performs no business logic of its own: the
// model decides what a cell contains and which color wins, the renderer only
// draws it.
package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/showdeck/showdeck/internal/runofshow"
)

// RenderText draws the run of show as a monospace table suitable for a
// printed rundown or a stage-left paste-up.  Headers span the full width as
// their own rows; item rows list every resolved column in order.
func RenderText(t *runofshow.ShowTimeline) string {
	cols := t.ResolvedColumns()

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(t.Name)

	header := make(table.Row, len(cols))
	for i, col := range cols {
		header[i] = col.Label
	}
	tw.AppendHeader(header)

	for _, e := range t.Entries {
		if e.Kind == runofshow.KindHeader {
			label := e.HeaderTitle
			if e.StartTime != "" {
				label = fmt.Sprintf("%s  [%s]", label, e.StartTime)
			}
			row := make(table.Row, len(cols))
			row[0] = label
			tw.AppendRow(row, table.RowConfig{AutoMerge: true})
			continue
		}
		row := make(table.Row, len(cols))
		for i, col := range cols {
			row[i] = runofshow.CellValue(e, col)
		}
		tw.AppendRow(row)
	}

	configs := make([]table.ColumnConfig, len(cols))
	for i := range cols {
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignLeft,
		}
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// RenderHTML draws the run of show as a self-contained HTML table carrying
// the resolved colors inline: the row color wins over the column color for
// every cell, and the foreground for a colored cell comes from the shared
// contrast helper so screen, color export and print export never disagree.
func RenderHTML(t *runofshow.ShowTimeline) string {
	cols := t.ResolvedColumns()

	var b strings.Builder
	b.WriteString("<table class=\"run-of-show\">\n<caption>")
	b.WriteString(html.EscapeString(t.Name))
	b.WriteString("</caption>\n<thead><tr>")
	for _, col := range cols {
		b.WriteString("<th")
		writeCellStyle(&b, col.Color)
		b.WriteString(">")
		b.WriteString(html.EscapeString(col.Label))
		b.WriteString("</th>")
	}
	b.WriteString("</tr></thead>\n<tbody>\n")

	for _, e := range t.Entries {
		if e.Kind == runofshow.KindHeader {
			b.WriteString(fmt.Sprintf("<tr class=\"section\"><td colspan=\"%d\">", len(cols)))
			b.WriteString(html.EscapeString(e.HeaderTitle))
			if e.StartTime != "" {
				b.WriteString(" <span class=\"start\">")
				b.WriteString(html.EscapeString(e.StartTime))
				b.WriteString("</span>")
			}
			b.WriteString("</td></tr>\n")
			continue
		}
		b.WriteString("<tr>")
		for _, col := range cols {
			b.WriteString("<td")
			writeCellStyle(&b, runofshow.CellColor(e, col))
			b.WriteString(">")
			b.WriteString(html.EscapeString(runofshow.CellValue(e, col)))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>\n")
	return b.String()
}

// writeCellStyle emits an inline style for a colored cell.  Uncolored cells
// get no style attribute at all so the consumer's defaults apply.
func writeCellStyle(b *strings.Builder, background string) {
	if background == "" {
		return
	}
	fmt.Fprintf(b, " style=\"background-color:%s;color:%s\"",
		html.EscapeString(background), runofshow.TextColorForHex(background))
}
