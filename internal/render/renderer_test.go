package render

import (
	"bytes"
	"context"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/titrant/internal/speciation"
)

func TestRender_MonoproticFigure(t *testing.T) {
	profile := speciation.MonoproticAcid{Concentration: 0.1, PKa: 4.76}.Profile(speciation.PHDomain())

	data, err := NewRenderer(0, 0).Render(context.Background(), SpeciationFigure(profile))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultWidth, img.Bounds().Dx())
	assert.Equal(t, DefaultHeight, img.Bounds().Dy())

	// bottom left cell stays blank
	r, g, b, _ := img.At(DefaultWidth/4, DefaultHeight*3/4).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)
}

func TestRender_DiproticFigure(t *testing.T) {
	profile := speciation.DiproticAcid{Concentration: 0.1, PKa1: 2.15, PKa2: 7.2}.Profile(speciation.PHDomain())

	data, err := NewRenderer(600, 400).Render(context.Background(), SpeciationFigure(profile))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 600, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())
}

func TestRender_NonFiniteSeries(t *testing.T) {
	// zero concentration makes every logC sample -Inf and the buffer flat
	profile := speciation.MonoproticAcid{Concentration: 0, PKa: 4.76}.Profile(speciation.PHDomain())

	data, err := NewRenderer(0, 0).Render(context.Background(), SpeciationFigure(profile))

	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestRender_PanelWithoutFiniteData(t *testing.T) {
	nan := math.NaN()
	fig := Figure{}
	fig.Panels[0] = &Panel{
		Title: "Empty",
		X:     []float64{0, 1, 2},
		Curves: []Curve{
			{Name: "nothing", Y: []float64{nan, math.Inf(1), math.Inf(-1)}},
		},
	}

	data, err := NewRenderer(400, 300).Render(context.Background(), fig)

	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}

func TestRender_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	profile := speciation.MonoproticAcid{Concentration: 0.1, PKa: 4.76}.Profile(speciation.PHDomain())

	_, err := NewRenderer(0, 0).Render(ctx, SpeciationFigure(profile))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSegments(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		x    []float64
		y    []float64
		want []segment
	}{
		{
			name: "all finite",
			x:    []float64{0, 1, 2},
			y:    []float64{3, 4, 5},
			want: []segment{{x: []float64{0, 1, 2}, y: []float64{3, 4, 5}}},
		},
		{
			name: "gap in the middle",
			x:    []float64{0, 1, 2, 3},
			y:    []float64{1, math.Inf(-1), 2, 3},
			want: []segment{
				{x: []float64{0}, y: []float64{1}},
				{x: []float64{2, 3}, y: []float64{2, 3}},
			},
		},
		{
			name: "nothing finite",
			x:    []float64{0, 1},
			y:    []float64{nan, nan},
			want: nil,
		},
		{
			name: "length mismatch uses shorter",
			x:    []float64{0, 1, 2},
			y:    []float64{5, 6},
			want: []segment{{x: []float64{0, 1}, y: []float64{5, 6}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, segments(tt.x, tt.y))
		})
	}
}

func TestPaddedRange(t *testing.T) {
	r := paddedRange(0, 10, 0.05)
	assert.InDelta(t, -0.5, r.Min, 1e-12)
	assert.InDelta(t, 10.5, r.Max, 1e-12)

	flat := paddedRange(0, 0, 0.05)
	assert.Equal(t, -1.0, flat.Min)
	assert.Equal(t, 1.0, flat.Max)

	flatNonZero := paddedRange(-5, -5, 0.05)
	assert.InDelta(t, -5.5, flatNonZero.Min, 1e-12)
	assert.InDelta(t, -4.5, flatNonZero.Max, 1e-12)
}

func TestSpeciationFigure_Layout(t *testing.T) {
	t.Run("monoprotic", func(t *testing.T) {
		p := speciation.MonoproticAcid{Concentration: 0.1, PKa: 4.76}.Profile(speciation.PHDomain())
		fig := SpeciationFigure(p)

		require.NotNil(t, fig.Panels[0])
		require.NotNil(t, fig.Panels[1])
		assert.Nil(t, fig.Panels[2])
		require.NotNil(t, fig.Panels[3])

		assert.Equal(t, []string{"Alpha 0", "Alpha 1"}, curveNames(fig.Panels[0]))
		assert.Equal(t, []string{"log H", "log OH", "logC: Alpha 0", "logC: Alpha 1"}, curveNames(fig.Panels[1]))
		assert.Equal(t, p.LogH, fig.Panels[1].Curves[0].Y)
		assert.Equal(t, "Buffer Intensity", fig.Panels[3].Title)
		assert.False(t, fig.Panels[3].Legend)
	})

	t.Run("diprotic plots log OH twice", func(t *testing.T) {
		p := speciation.DiproticAcid{Concentration: 0.1, PKa1: 2.15, PKa2: 7.2}.Profile(speciation.PHDomain())
		fig := SpeciationFigure(p)

		assert.Equal(t, []string{"Alpha 0", "Alpha 1", "Alpha 2"}, curveNames(fig.Panels[0]))
		assert.Equal(t, []string{"logC: Alpha 0", "logC: Alpha 1", "logC: Alpha 2", "Log H", "Log OH"}, curveNames(fig.Panels[1]))
		assert.Equal(t, p.LogOH, fig.Panels[1].Curves[3].Y)
		assert.Equal(t, p.LogOH, fig.Panels[1].Curves[4].Y)
	})
}

func curveNames(p *Panel) []string {
	names := make([]string, 0, len(p.Curves))
	for _, c := range p.Curves {
		names = append(names, c.Name)
	}
	return names
}
