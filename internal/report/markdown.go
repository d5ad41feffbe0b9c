// Package report formats speciation profiles as Markdown documents.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/RMahshie/titrant/internal/speciation"
)

// WriteSummary writes a Markdown summary of p: the inputs, the buffer
// maximum and a table of alpha fractions at every whole pH unit.
func WriteSummary(w io.Writer, p *speciation.Profile) error {
	md := markdown.NewMarkdown(w)

	writeHeader(md, p)
	writeBufferMaximum(md, p)
	writeTable(md, p)

	return md.Build()
}

func writeHeader(md *markdown.Markdown, p *speciation.Profile) {
	md.H1(title(p.Kind) + " acid speciation")
	md.PlainText("")

	rows := [][]string{
		{"Concentration (mol/L)", formatValue(p.Concentration)},
	}
	for i, pka := range p.PKa {
		label := "pKa"
		if len(p.PKa) > 1 {
			label = fmt.Sprintf("pKa%d", i+1)
		}
		rows = append(rows, []string{label, formatValue(pka)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Input", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeBufferMaximum(md *markdown.Markdown, p *speciation.Profile) {
	md.H2("Buffer capacity")
	peak, ok := p.BufferMaximum()
	if !ok {
		md.PlainText("No finite buffer intensity in the pH range.")
		md.PlainText("")
		return
	}
	md.BulletList(
		"Maximum buffer intensity: "+formatValue(peak.BufferIntensity),
		"At pH: "+strconv.FormatFloat(peak.PH, 'f', 1, 64),
	)
	md.PlainText("")
}

func writeTable(md *markdown.Markdown, p *speciation.Profile) {
	md.H2("Alpha fractions")

	header := []string{"pH"}
	for s := 0; s < p.Species(); s++ {
		header = append(header, fmt.Sprintf("Alpha %d", s))
	}
	header = append(header, "Buffer Intensity")

	var rows [][]string
	for _, sample := range p.IntegerSamples() {
		row := []string{strconv.FormatFloat(sample.PH, 'f', 0, 64)}
		for _, a := range sample.Alpha {
			row = append(row, formatValue(a))
		}
		row = append(row, formatValue(sample.BufferIntensity))
		rows = append(rows, row)
	}

	md.Table(markdown.TableSet{Header: header, Rows: rows})
}

func title(kind speciation.Kind) string {
	s := string(kind)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}
