package render

import (
	"fmt"

	"github.com/RMahshie/titrant/internal/speciation"
)

// SpeciationFigure lays out the alpha diagram (top left), the log-C diagram
// (top right) and the buffer intensity (bottom right) for a profile.
func SpeciationFigure(p *speciation.Profile) Figure {
	var fig Figure
	fig.Panels[0] = alphaPanel(p)
	fig.Panels[1] = logPanel(p)
	fig.Panels[3] = bufferPanel(p)
	return fig
}

func alphaPanel(p *speciation.Profile) *Panel {
	panel := &Panel{
		Title:  "Alpha Diagram",
		XLabel: "pH",
		YLabel: "Alpha",
		X:      p.PH,
		Legend: true,
	}
	for s, alpha := range p.Alpha {
		panel.Curves = append(panel.Curves, Curve{Name: fmt.Sprintf("Alpha %d", s), Y: alpha})
	}
	return panel
}

// logPanel plots the log concentrations. The diprotic layout plots log[OH-]
// under both the "Log H" and "Log OH" labels and leaves log[H+] out.
func logPanel(p *speciation.Profile) *Panel {
	panel := &Panel{
		Title:  "Log C vs. pH",
		XLabel: "pH",
		YLabel: "Log C",
		X:      p.PH,
		Legend: true,
	}

	logC := make([]Curve, 0, len(p.LogC))
	for s, values := range p.LogC {
		logC = append(logC, Curve{Name: fmt.Sprintf("logC: Alpha %d", s), Y: values})
	}

	switch p.Kind {
	case speciation.Diprotic:
		panel.Curves = append(panel.Curves, logC...)
		panel.Curves = append(panel.Curves,
			Curve{Name: "Log H", Y: p.LogOH},
			Curve{Name: "Log OH", Y: p.LogOH},
		)
	default:
		panel.Curves = append(panel.Curves,
			Curve{Name: "log H", Y: p.LogH},
			Curve{Name: "log OH", Y: p.LogOH},
		)
		panel.Curves = append(panel.Curves, logC...)
	}
	return panel
}

func bufferPanel(p *speciation.Profile) *Panel {
	return &Panel{
		Title:  "Buffer Intensity",
		XLabel: "pH",
		YLabel: "Buffer Intensity",
		X:      p.PH,
		Curves: []Curve{{Y: p.BufferIntensity}},
	}
}
