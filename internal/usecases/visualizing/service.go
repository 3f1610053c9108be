package visualizing

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/vfg2006/sales-report-api/internal/config"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/pkg/apiErrors"
	"github.com/vfg2006/sales-report-api/pkg/log"
)

const (
	regionChartTitle  = "Sales by Region"
	productChartTitle = "Product Profit Share"
	pieStartAngle     = 90
	piePercentFormat  = "%.1f%%"
)

// Service gera os gráficos do relatório
type Service struct {
	cfg      config.Report
	renderer Renderer
}

func NewService(cfg config.Report, renderer Renderer) *Service {
	return &Service{
		cfg:      cfg,
		renderer: renderer,
	}
}

// Generate renderiza o gráfico de vendas por região e o de participação no lucro por produto
func (s *Service) Generate(ctx context.Context, ds *domain.Dataset) (domain.ChartBundle, error) {
	log.ForContext(ctx).WithField("stage", domain.StageVisualize).Info("Gerando gráficos do relatório")

	specs, err := s.Specs(ds)
	if err != nil {
		return nil, err
	}

	bundle := make(domain.ChartBundle, len(specs))
	for _, spec := range specs {
		image, err := s.renderer.Render(spec)
		if err != nil {
			log.ForContext(ctx).WithError(err).WithField("stage", domain.StageVisualize).Error("Erro ao renderizar gráfico")
			return nil, domain.NewReportError(domain.ErrRender, apiErrors.ErrReportRender, domain.StageVisualize,
				fmt.Sprintf("%s: %v", spec.Name, err))
		}
		if len(image) == 0 {
			return nil, domain.NewReportError(domain.ErrRender, apiErrors.ErrReportRender, domain.StageVisualize,
				fmt.Sprintf("%s: renderer returned an empty image", spec.Name))
		}

		bundle[spec.Name] = base64.StdEncoding.EncodeToString(image)
	}

	return bundle, nil
}

// Specs monta as especificações dos dois gráficos sem depender do backend de renderização
func (s *Service) Specs(ds *domain.Dataset) ([]domain.ChartSpec, error) {
	regions := domain.GroupSum(ds, domain.ByRegion, domain.SalesOf)
	products := domain.GroupSum(ds, domain.ByProduct, domain.ProfitOf)
	if len(regions) == 0 || len(products) == 0 {
		return nil, domain.NewReportError(domain.ErrEmptyDataset, apiErrors.ErrReportEmptyDataset, domain.StageVisualize,
			"no groups to chart")
	}

	domain.SortGroupsDesc(regions)

	return []domain.ChartSpec{
		s.regionChart(regions),
		s.productChart(products),
	}, nil
}

func (s *Service) regionChart(groups []domain.Group) domain.ChartSpec {
	labels, values := split(groups)

	return domain.ChartSpec{
		Name:          domain.RegionChart,
		Kind:          domain.ChartKindBar,
		Title:         regionChartTitle,
		XLabel:        "Region",
		YLabel:        fmt.Sprintf("Total Sales (%s)", s.cfg.CurrencySymbol),
		Labels:        labels,
		Values:        values,
		Color:         s.cfg.BarColor,
		LabelRotation: 0,
		WidthInches:   s.cfg.ChartWidth,
		HeightInches:  s.cfg.ChartHeight,
	}
}

func (s *Service) productChart(groups []domain.Group) domain.ChartSpec {
	labels, values := split(groups)

	return domain.ChartSpec{
		Name:          domain.ProductChart,
		Kind:          domain.ChartKindPie,
		Title:         productChartTitle,
		Labels:        labels,
		Values:        values,
		StartAngle:    pieStartAngle,
		PercentFormat: piePercentFormat,
		WidthInches:   s.cfg.ChartWidth,
		HeightInches:  s.cfg.ChartHeight,
	}
}

func split(groups []domain.Group) ([]string, []float64) {
	labels := make([]string, 0, len(groups))
	values := make([]float64, 0, len(groups))
	for _, g := range groups {
		labels = append(labels, g.Key)
		values = append(values, g.Value)
	}
	return labels, values
}
