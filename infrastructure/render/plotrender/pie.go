package plotrender

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// palette segue a sequência tab10
var palette = []color.Color{
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	color.RGBA{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
	color.RGBA{R: 0xe3, G: 0x77, B: 0xc2, A: 0xff},
	color.RGBA{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
	color.RGBA{R: 0xbc, G: 0xbd, B: 0x22, A: 0xff},
	color.RGBA{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff},
}

// emptyPieCaption é exibido quando nenhuma fatia tem valor positivo
const emptyPieCaption = "No positive profit"

// pieChart desenha fatias proporcionais a partir de startAngle, no sentido anti-horário.
// Valores negativos contam como zero.
type pieChart struct {
	labels     []string
	values     []float64
	startAngle float64
	format     string
	style      text.Style
}

func newPieChart(labels []string, values []float64, startAngle float64, format string, style text.Style) *pieChart {
	clamped := make([]float64, len(values))
	for i, v := range values {
		if v > 0 && !math.IsInf(v, 1) {
			clamped[i] = v
		}
	}

	return &pieChart{
		labels:     labels,
		values:     clamped,
		startAngle: startAngle,
		format:     format,
		style:      style,
	}
}

// Plot implementa plot.Plotter
func (pc *pieChart) Plot(c draw.Canvas, _ *plot.Plot) {
	center := vg.Point{
		X: (c.Min.X + c.Max.X) / 2,
		Y: (c.Min.Y + c.Max.Y) / 2,
	}
	radius := min(c.Max.X-c.Min.X, c.Max.Y-c.Min.Y) / 2 * 0.75

	var total float64
	for _, v := range pc.values {
		total += v
	}

	if caption := pc.caption(); caption != "" {
		var outline vg.Path
		outline.Move(onCircle(center, radius, 0))
		outline.Arc(center, radius, 0, 2*math.Pi)
		outline.Close()
		c.SetLineStyle(draw.LineStyle{Color: color.Gray{Y: 0x80}, Width: vg.Points(1)})
		c.Stroke(outline)
		c.FillText(pc.style, center, caption)
		return
	}

	angle := pc.startAngle
	for i, v := range pc.values {
		sweep := v / total * 2 * math.Pi
		if sweep > 0 {
			var wedge vg.Path
			wedge.Move(center)
			wedge.Line(onCircle(center, radius, angle))
			wedge.Arc(center, radius, angle, sweep)
			wedge.Close()

			c.SetColor(palette[i%len(palette)])
			c.Fill(wedge)
		}

		mid := angle + sweep/2
		c.FillText(pc.style, onCircle(center, radius*0.6, mid), fmt.Sprintf(pc.format, v/total*100))
		c.FillText(pc.style, onCircle(center, radius*1.15, mid), pc.labels[i])

		angle += sweep
	}
}

// caption retorna o aviso do gráfico vazio, ou "" quando há fatias a desenhar
func (pc *pieChart) caption() string {
	for _, v := range pc.values {
		if v > 0 {
			return ""
		}
	}
	return emptyPieCaption
}

func onCircle(center vg.Point, radius vg.Length, angle float64) vg.Point {
	return vg.Point{
		X: center.X + radius*vg.Length(math.Cos(angle)),
		Y: center.Y + radius*vg.Length(math.Sin(angle)),
	}
}
