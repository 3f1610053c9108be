package domain

const (
	RegionChart  = "RegionChart"
	ProductChart = "ProductChart"
)

// ChartBundle mapeia o nome do gráfico para a imagem PNG codificada em base64
type ChartBundle map[string]string

type ChartKind string

const (
	ChartKindBar ChartKind = "bar"
	ChartKindPie ChartKind = "pie"
)

// ChartSpec descreve um gráfico independente do backend de renderização
type ChartSpec struct {
	Name          string    `json:"name"`
	Kind          ChartKind `json:"kind"`
	Title         string    `json:"title"`
	XLabel        string    `json:"x_label,omitempty"`
	YLabel        string    `json:"y_label,omitempty"`
	Labels        []string  `json:"labels"`
	Values        []float64 `json:"values"`
	Color         string    `json:"color,omitempty"`
	LabelRotation float64   `json:"label_rotation"` // graus
	StartAngle    float64   `json:"start_angle"`    // graus, sentido anti-horário
	PercentFormat string    `json:"percent_format,omitempty"`
	WidthInches   float64   `json:"width_inches"`
	HeightInches  float64   `json:"height_inches"`
}
