package visualizing

import (
	"github.com/vfg2006/sales-report-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/renderer.go -package=mocks

// Renderer converte a especificação de um gráfico em uma imagem raster (PNG)
type Renderer interface {
	Render(spec domain.ChartSpec) ([]byte, error)
}
