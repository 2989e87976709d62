package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"go.viam.com/collide/query"
)

// printf prints a message with a newline.
func printf(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(w, format+"\n", a...)
}

// warningf prints a yellow warning to w.
func warningf(w io.Writer, format string, a ...interface{}) {
	color.New(color.FgYellow).Fprintf(w, "Warning: "+format+"\n", a...)
}

// renderTable writes a table with the given header and rows to w.
func renderTable(w io.Writer, header table.Row, rows []table.Row) {
	t := table.NewWriter()
	t.AppendHeader(header)
	t.AppendRows(rows)
	printf(w, "%s", t.Render())
}

var proximityColors = map[query.Proximity]*color.Color{
	query.Intersecting: color.New(color.FgRed, color.Bold),
	query.WithinMargin: color.New(color.FgYellow),
	query.Disjoint:     color.New(color.FgGreen),
}

func colorProximity(p query.Proximity) string {
	if c, ok := proximityColors[p]; ok {
		return c.Sprint(p.String())
	}
	return p.String()
}

func formatCoords(coords []float64) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = fmt.Sprintf("%.4g", c)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
