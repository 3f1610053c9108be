package plotrender

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/vfg2006/sales-report-api/internal/domain"
)

const (
	defaultWidthInches  = 6
	defaultHeightInches = 4
	maxBarWidth         = 40
)

var defaultBarColor = color.RGBA{R: 0x05, G: 0x4A, B: 0xDA, A: 0xFF}

// Renderer desenha gráficos com gonum/plot e devolve PNG
type Renderer struct {
	buffers sync.Pool
	active  atomic.Int64
}

func New() *Renderer {
	return &Renderer{
		buffers: sync.Pool{
			New: func() any { return new(bytes.Buffer) },
		},
	}
}

// surface é a área de desenho de um único gráfico; deve ser liberada com release
type surface struct {
	canvas *vgimg.Canvas
	buf    *bytes.Buffer
	owner  *Renderer
}

func (r *Renderer) acquire(width, height vg.Length) *surface {
	r.active.Add(1)

	buf := r.buffers.Get().(*bytes.Buffer)
	buf.Reset()

	return &surface{
		canvas: vgimg.New(width, height),
		buf:    buf,
		owner:  r,
	}
}

func (s *surface) release() {
	s.canvas = nil
	s.buf.Reset()
	s.owner.buffers.Put(s.buf)
	s.buf = nil
	s.owner.active.Add(-1)
}

// ActiveSurfaces retorna quantas superfícies de desenho ainda estão abertas
func (r *Renderer) ActiveSurfaces() int64 {
	return r.active.Load()
}

// Render desenha o gráfico descrito em spec. A superfície é liberada em qualquer saída,
// inclusive quando o backend entra em pânico.
func (r *Renderer) Render(spec domain.ChartSpec) (out []byte, err error) {
	s := r.acquire(dimension(spec.WidthInches, defaultWidthInches), dimension(spec.HeightInches, defaultHeightInches))
	defer s.release()

	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = fmt.Errorf("render %s: %v", spec.Name, rec)
		}
	}()

	p, err := buildPlot(spec)
	if err != nil {
		return nil, err
	}

	p.Draw(draw.New(s.canvas))

	if _, err := (vgimg.PngCanvas{Canvas: s.canvas}).WriteTo(s.buf); err != nil {
		return nil, fmt.Errorf("render %s: encode png: %w", spec.Name, err)
	}

	return bytes.Clone(s.buf.Bytes()), nil
}

func buildPlot(spec domain.ChartSpec) (*plot.Plot, error) {
	if len(spec.Labels) != len(spec.Values) {
		return nil, fmt.Errorf("render %s: %d labels for %d values", spec.Name, len(spec.Labels), len(spec.Values))
	}
	if len(spec.Values) == 0 {
		return nil, fmt.Errorf("render %s: no values", spec.Name)
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)

	switch spec.Kind {
	case domain.ChartKindBar:
		return p, addBars(p, spec)
	case domain.ChartKindPie:
		return p, addPie(p, spec)
	default:
		return nil, fmt.Errorf("render %s: unsupported chart kind %q", spec.Name, spec.Kind)
	}
}

func addBars(p *plot.Plot, spec domain.ChartSpec) error {
	fill := color.Color(defaultBarColor)
	if spec.Color != "" {
		c, err := parseHexColor(spec.Color)
		if err != nil {
			return fmt.Errorf("render %s: %w", spec.Name, err)
		}
		fill = c
	}

	width := vg.Points(math.Min(maxBarWidth, 300/float64(len(spec.Values))))
	bars, err := plotter.NewBarChart(plotter.Values(spec.Values), width)
	if err != nil {
		return fmt.Errorf("render %s: %w", spec.Name, err)
	}
	bars.Color = fill
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalX(spec.Labels...)
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel
	p.X.Tick.Label.Rotation = spec.LabelRotation * math.Pi / 180
	if spec.LabelRotation != 0 {
		p.X.Tick.Label.XAlign = text.XRight
	}

	return nil
}

func addPie(p *plot.Plot, spec domain.ChartSpec) error {
	style := p.Legend.TextStyle
	style.XAlign = text.XCenter
	style.YAlign = text.YCenter

	format := spec.PercentFormat
	if format == "" {
		format = "%.1f%%"
	}

	p.Add(newPieChart(spec.Labels, spec.Values, spec.StartAngle*math.Pi/180, format, style))
	p.HideAxes()

	return nil
}

func dimension(inches float64, fallback float64) vg.Length {
	if inches <= 0 {
		inches = fallback
	}
	return vg.Length(inches) * vg.Inch
}

// parseHexColor aceita #RGB e #RRGGBB
func parseHexColor(s string) (color.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, fmt.Errorf("invalid color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q", s)
	}

	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}
