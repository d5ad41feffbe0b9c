package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultWidth and DefaultHeight match a 12x8 inch figure at 100 dpi.
	DefaultWidth  = 1200
	DefaultHeight = 800

	// gridCells is the number of panel slots in the 2x2 figure grid.
	gridCells = 4

	noDataNotice = "no finite data to plot"
)

// Curve is a named series of y values sharing the panel's x values.
type Curve struct {
	Name string
	Y    []float64
}

// Panel describes one subplot.
type Panel struct {
	Title  string
	XLabel string
	YLabel string
	X      []float64
	Curves []Curve
	Legend bool
}

// Figure is a 2x2 grid of panels in row-major order. A nil slot is left blank.
type Figure struct {
	Panels [gridCells]*Panel
}

// Renderer turns figures into PNG images
type Renderer interface {
	Render(ctx context.Context, fig Figure) ([]byte, error)
}

type chartRenderer struct {
	width  int
	height int
}

// NewRenderer creates a renderer producing images of the given size. Non
// positive dimensions fall back to the defaults.
func NewRenderer(width, height int) Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &chartRenderer{width: width, height: height}
}

// Render draws every panel concurrently, composes them onto a white canvas
// and encodes the result as PNG.
func (r *chartRenderer) Render(ctx context.Context, fig Figure) ([]byte, error) {
	cellW, cellH := r.width/2, r.height/2
	images := make([]image.Image, gridCells)

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range fig.Panels {
		if p == nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, err := renderPanel(p, cellW, cellH)
			if err != nil {
				return fmt.Errorf("panel %q: %w", p.Title, err)
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	canvas := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	for i, img := range images {
		if img == nil {
			continue
		}
		origin := image.Pt((i%2)*cellW, (i/2)*cellH)
		draw.Draw(canvas, image.Rectangle{Min: origin, Max: origin.Add(img.Bounds().Size())}, img, img.Bounds().Min, draw.Over)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode figure: %w", err)
	}
	return buf.Bytes(), nil
}

// renderPanel draws a single panel with go-chart. Curves are split at non
// finite samples so they show up as gaps instead of breaking the ranges.
func renderPanel(p *Panel, width, height int) (image.Image, error) {
	var series []chart.Series
	var named []chart.Series

	for i, c := range p.Curves {
		st := lineStyle(chart.GetDefaultColor(i))
		for j, seg := range segments(p.X, c.Y) {
			s := chart.ContinuousSeries{XValues: seg.x, YValues: seg.y, Style: st}
			if j == 0 {
				s.Name = c.Name
				named = append(named, s)
			}
			series = append(series, s)
		}
	}

	if len(series) == 0 {
		return blankPanel(p.Title, width, height), nil
	}

	xMin, xMax, _ := finiteBounds(p.X)
	yMin, yMax, _ := finiteBounds(flatten(p.Curves))

	ch := chart.Chart{
		Title:      p.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           p.XLabel,
			Range:          paddedRange(xMin, xMax, 0),
			ValueFormatter: formatTick,
		},
		YAxis: chart.YAxis{
			Name:           p.YLabel,
			Range:          paddedRange(yMin, yMax, 0.05),
			ValueFormatter: formatTick,
		},
		Series: series,
	}
	if p.Legend && len(named) > 0 {
		legendSource := &chart.Chart{Series: named}
		ch.Elements = []chart.Renderable{chart.Legend(legendSource)}
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to decode chart: %w", err)
	}
	return img, nil
}

// lineStyle returns a solid line without point markers
func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
	}
}

type segment struct {
	x []float64
	y []float64
}

// segments splits (x, y) into runs where both coordinates are finite.
func segments(x, y []float64) []segment {
	n := min(len(x), len(y))
	var out []segment
	var cur segment
	flush := func() {
		if len(cur.x) > 0 {
			out = append(out, cur)
		}
		cur = segment{}
	}
	for i := 0; i < n; i++ {
		if !finite(x[i]) || !finite(y[i]) {
			flush()
			continue
		}
		cur.x = append(cur.x, x[i])
		cur.y = append(cur.y, y[i])
	}
	flush()
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func flatten(curves []Curve) []float64 {
	var all []float64
	for _, c := range curves {
		all = append(all, c.Y...)
	}
	return all
}

// finiteBounds returns the min and max over the finite values.
func finiteBounds(values []float64) (lo, hi float64, ok bool) {
	for _, v := range values {
		if !finite(v) {
			continue
		}
		if !ok {
			lo, hi, ok = v, v, true
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi, ok
}

// paddedRange widens [lo, hi] by margin on each side. go-chart rejects zero
// width ranges, so a flat range is opened up around its value.
func paddedRange(lo, hi, margin float64) *chart.ContinuousRange {
	span := hi - lo
	if span <= 0 {
		pad := math.Abs(lo) * 0.1
		if pad == 0 {
			pad = 1
		}
		return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
	}
	return &chart.ContinuousRange{Min: lo - span*margin, Max: hi + span*margin}
}

func formatTick(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return fmt.Sprintf("%v", v)
	}
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'g', 3, 64)
}

// blankPanel draws an empty white panel with the title and a notice.
func blankPanel(title string, width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	dr := &font.Drawer{Dst: img, Src: image.NewUniform(color.RGBA{R: 90, G: 90, B: 90, A: 255}), Face: face}
	for i, line := range []string{title, noDataNotice} {
		w := dr.MeasureString(line).Ceil()
		x := (width - w) / 2
		y := height/2 + i*(face.Metrics().Height.Ceil()+4)
		dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
		dr.DrawString(line)
	}
	return img
}
