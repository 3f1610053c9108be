package reporting

import (
	"github.com/vfg2006/sales-report-api/infrastructure/render/plotrender"
	"github.com/vfg2006/sales-report-api/internal/config"
	"github.com/vfg2006/sales-report-api/internal/usecases/aggregating"
	"github.com/vfg2006/sales-report-api/internal/usecases/loading"
	"github.com/vfg2006/sales-report-api/internal/usecases/narrating"
	"github.com/vfg2006/sales-report-api/internal/usecases/visualizing"
)

// NewPipeline monta o serviço com as etapas padrão e o renderizador gonum/plot
func NewPipeline(cfg config.Report) *Service {
	return NewService(
		loading.NewService(cfg),
		aggregating.NewService(cfg),
		visualizing.NewService(cfg, plotrender.New()),
		narrating.NewService(),
	)
}
