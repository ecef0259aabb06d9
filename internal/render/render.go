package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/KaramelBytes/census-cli/internal/analysis"
	"github.com/KaramelBytes/census-cli/internal/dataset"
)

var (
	// ErrNoData is returned when a chart has nothing to draw.
	ErrNoData = errors.New("no data to plot")
	// ErrUnknownKind is returned for a Spec with an unsupported Kind.
	ErrUnknownKind = errors.New("unknown chart kind")
)

// RenderError reports a chart that could not be drawn or written. It is not
// fatal: the remaining charts still render.
type RenderError struct {
	Chart string
	Err   error
}

func (e *RenderError) Error() string { return fmt.Sprintf("chart %s: %v", e.Chart, e.Err) }
func (e *RenderError) Unwrap() error { return e.Err }

// Image is an encoded chart.
type Image struct {
	Name  string
	Kind  Kind
	Title string
	PNG   []byte
	// Path is set once a Sink has stored the image.
	Path string
}

// screenDPI matches the default resolution of the PNG backends.
const screenDPI = 96

// Renderer draws specs at a fixed canvas size.
type Renderer struct {
	Width  vg.Length
	Height vg.Length
}

// NewRenderer returns a Renderer with a canvas of the given size in inches.
func NewRenderer(widthIn, heightIn float64) *Renderer {
	if widthIn <= 0 {
		widthIn = 10
	}
	if heightIn <= 0 {
		heightIn = 6
	}
	return &Renderer{Width: vg.Length(widthIn) * vg.Inch, Height: vg.Length(heightIn) * vg.Inch}
}

// Render draws spec from t. Any failure, including a panic in a plotting
// backend, is returned as a *RenderError.
func (r *Renderer) Render(spec Spec, t *dataset.Table) (img *Image, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			img, err = nil, &RenderError{Chart: spec.Name, Err: fmt.Errorf("backend panic: %v", rec)}
		}
	}()
	var data []byte
	switch spec.Kind {
	case KindBar:
		data, err = r.bar(spec, t)
	case KindHistogram:
		data, err = r.histogram(spec, t)
	case KindScatter:
		data, err = r.scatter(spec, t)
	case KindHeatmap:
		data, err = r.heatmap(spec, t)
	case KindPie, KindDonut:
		data, err = r.pie(spec, t)
	case KindLine:
		data, err = r.line(spec, t)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownKind, spec.Kind)
	}
	if err != nil {
		return nil, &RenderError{Chart: spec.Name, Err: err}
	}
	return &Image{Name: spec.Name, Kind: spec.Kind, Title: spec.Title, PNG: data}, nil
}

func (r *Renderer) newPlot(spec Spec) *plot.Plot {
	p := plot.New()
	p.Title.Text = spec.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel
	return p
}

func (r *Renderer) encode(p *plot.Plot) ([]byte, error) {
	wt, err := p.WriterTo(r.Width, r.Height, "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rotateX(p *plot.Plot, degrees float64) {
	if degrees == 0 {
		return
	}
	p.X.Tick.Label.Rotation = degrees * math.Pi / 180
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
}

// categories counts rows per spec.X, or sums spec.Y per spec.X when Y is set.
// Ordered by value descending, then by name; truncated to spec.Limit.
func categories(spec Spec, t *dataset.Table) ([]string, []float64, error) {
	keys, err := t.Strings(spec.X)
	if err != nil {
		return nil, nil, err
	}
	var counts []analysis.CategoryCount
	var sums []analysis.GroupTotal
	if spec.Y == "" {
		counts = analysis.ValueCounts(keys)
	} else {
		vals, err := t.Floats(spec.Y)
		if err != nil {
			return nil, nil, err
		}
		sums = analysis.SumBy(keys, vals)
	}
	var labels []string
	var values []float64
	for _, c := range counts {
		labels = append(labels, c.Value)
		values = append(values, float64(c.Count))
	}
	for _, s := range sums {
		labels = append(labels, s.Key)
		values = append(values, s.Total)
	}
	if spec.Limit > 0 && len(labels) > spec.Limit {
		labels, values = labels[:spec.Limit], values[:spec.Limit]
	}
	if len(labels) == 0 {
		return nil, nil, ErrNoData
	}
	return labels, values, nil
}

func (r *Renderer) bar(spec Spec, t *dataset.Table) ([]byte, error) {
	labels, values, err := categories(spec, t)
	if err != nil {
		return nil, err
	}
	p := r.newPlot(spec)
	width := r.Width * 0.6 / vg.Length(len(values))
	if width > vg.Points(40) {
		width = vg.Points(40)
	}
	bars, err := plotter.NewBarChart(plotter.Values(values), width)
	if err != nil {
		return nil, err
	}
	bars.Color = hexColor(spec.Style.Fill, 0)
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)
	rotateX(p, spec.Style.RotateLabels)
	p.Y.Min = 0
	return r.encode(p)
}

func (r *Renderer) histogram(spec Spec, t *dataset.Table) ([]byte, error) {
	vals, err := t.Floats(spec.X)
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, ErrNoData
	}
	bins := spec.Bins
	if bins <= 0 {
		bins = 30
	}
	p := r.newPlot(spec)
	h, err := plotter.NewHist(plotter.Values(vals), bins)
	if err != nil {
		return nil, err
	}
	h.FillColor = hexColor(spec.Style.Fill, 0)
	h.LineStyle.Color = hexColor(spec.Style.Edge, 0)
	p.Add(h)

	s := stats.Sample{Xs: vals}
	if spec.KDE && len(vals) > 1 && s.StdDev() > 0 {
		kde := &stats.KDE{Sample: s}
		scale := float64(len(vals)) * h.Width
		fn := plotter.NewFunction(func(x float64) float64 { return kde.PDF(x) * scale })
		lo, hi := s.Bounds()
		fn.XMin, fn.XMax = lo, hi
		fn.Samples = 200
		fn.Color = hexColor(spec.Style.Edge, 0)
		fn.Width = vg.Points(2)
		p.Add(fn)
	}
	p.Y.Min = 0
	return r.encode(p)
}

func (r *Renderer) scatter(spec Spec, t *dataset.Table) ([]byte, error) {
	xs, err := t.Floats(spec.X)
	if err != nil {
		return nil, err
	}
	ys, err := t.Floats(spec.Y)
	if err != nil {
		return nil, err
	}
	hue := make([]string, len(xs))
	if spec.Hue != "" {
		if hue, err = t.Strings(spec.Hue); err != nil {
			return nil, err
		}
	}
	groups := make(map[string]plotter.XYs)
	for i := range xs {
		// Log axes cannot show non-positive values.
		if spec.LogScale && (xs[i] <= 0 || ys[i] <= 0) {
			continue
		}
		groups[hue[i]] = append(groups[hue[i]], plotter.XY{X: xs[i], Y: ys[i]})
	}
	if len(groups) == 0 {
		return nil, ErrNoData
	}
	names := make([]string, 0, len(groups))
	for n := range groups {
		names = append(names, n)
	}
	sort.Strings(names)

	p := r.newPlot(spec)
	if spec.LogScale {
		p.X.Scale, p.Y.Scale = plot.LogScale{}, plot.LogScale{}
		p.X.Tick.Marker, p.Y.Tick.Marker = plot.LogTicks{Prec: -1}, plot.LogTicks{Prec: -1}
	}
	for i, n := range names {
		sc, err := plotter.NewScatter(groups[n])
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Color = hexColor(paletteAt(spec.Style.Palette, i), spec.Style.Alpha)
		sc.GlyphStyle.Radius = vg.Points(3)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
		if spec.Hue != "" {
			p.Legend.Add(n, sc)
		}
	}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return r.encode(p)
}

// corrGrid adapts a correlation matrix to plotter.GridXYZ.
type corrGrid struct{ m *analysis.CorrMatrix }

func (g corrGrid) Dims() (c, r int)   { return len(g.m.Columns), len(g.m.Columns) }
func (g corrGrid) Z(c, r int) float64 { return g.m.Values[r][c] }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }

func (r *Renderer) heatmap(spec Spec, t *dataset.Table) ([]byte, error) {
	m, err := analysis.CorrelationMatrix(t)
	if err != nil {
		return nil, err
	}
	if len(m.Columns) == 0 {
		return nil, ErrNoData
	}
	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	hm := plotter.NewHeatMap(corrGrid{m}, cm.Palette(255))
	hm.Min, hm.Max = -1, 1
	hm.NaN = color.Gray{Y: 200}

	p := r.newPlot(spec)
	p.Add(hm)
	if spec.Annotate {
		var xys plotter.XYs
		var text []string
		for row := range m.Columns {
			for col := range m.Columns {
				xys = append(xys, plotter.XY{X: float64(col), Y: float64(row)})
				v := m.Values[row][col]
				if math.IsNaN(v) {
					text = append(text, "n/a")
				} else {
					text = append(text, fmt.Sprintf("%.2f", v))
				}
			}
		}
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: text})
		if err != nil {
			return nil, err
		}
		for i := range labels.TextStyle {
			labels.TextStyle[i].XAlign = draw.XCenter
			labels.TextStyle[i].YAlign = draw.YCenter
		}
		p.Add(labels)
	}
	p.NominalX(m.Columns...)
	p.NominalY(m.Columns...)
	rotateX(p, spec.Style.RotateLabels)
	return r.encode(p)
}

func (r *Renderer) line(spec Spec, t *dataset.Table) ([]byte, error) {
	vals, err := t.Floats(spec.Y)
	if err != nil {
		return nil, err
	}
	if spec.Limit > 0 && len(vals) > spec.Limit {
		vals = vals[:spec.Limit]
	}
	if len(vals) == 0 {
		return nil, ErrNoData
	}
	pts := make(plotter.XYs, len(vals))
	for i, v := range vals {
		pts[i] = plotter.XY{X: float64(i), Y: v}
	}
	p := r.newPlot(spec)
	l, sc, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, err
	}
	c := hexColor(spec.Style.Edge, 0)
	l.Color = c
	l.Width = vg.Points(1.5)
	if spec.Style.DashDot {
		l.Dashes = []vg.Length{vg.Points(6), vg.Points(3), vg.Points(1.5), vg.Points(3)}
	}
	p.Add(l)
	if spec.Style.Markers {
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Color = c
		sc.GlyphStyle.Radius = vg.Points(3)
		p.Add(sc)
	}
	p.Add(plotter.NewGrid())
	return r.encode(p)
}

func (r *Renderer) pie(spec Spec, t *dataset.Table) ([]byte, error) {
	labels, values, err := categories(spec, t)
	if err != nil {
		return nil, err
	}
	var total float64
	for _, v := range values {
		total += v
	}
	if total <= 0 {
		return nil, ErrNoData
	}
	slices := make([]chart.Value, len(values))
	for i, v := range values {
		slices[i] = chart.Value{
			Value: v,
			Label: fmt.Sprintf("%s %.1f%%", labels[i], 100*v/total),
			Style: chart.Style{FillColor: drawing.ColorFromHex(paletteAt(spec.Style.Palette, i))},
		}
	}
	w := int(r.Width.Dots(screenDPI))
	h := int(r.Height.Dots(screenDPI))

	var buf bytes.Buffer
	if spec.Kind == KindDonut {
		dc := chart.DonutChart{Title: spec.Title, Width: w, Height: h, Values: slices}
		err = dc.Render(chart.PNG, &buf)
	} else {
		pc := chart.PieChart{Title: spec.Title, Width: w, Height: h, Values: slices}
		err = pc.Render(chart.PNG, &buf)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func paletteAt(p []string, i int) string {
	if len(p) == 0 {
		return set2[i%len(set2)]
	}
	return p[i%len(p)]
}

// hexColor parses a hex color; alpha in (0,1) makes it translucent.
func hexColor(hex string, alpha float64) color.Color {
	if hex == "" {
		hex = "4c72b0"
	}
	c := drawing.ColorFromHex(hex)
	out := color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
	if alpha > 0 && alpha < 1 {
		out.A = uint8(math.Round(alpha * 255))
	}
	return out
}
