package aggregating

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vfg2006/sales-report-api/internal/config"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/pkg/apiErrors"
	"github.com/vfg2006/sales-report-api/pkg/log"
	"github.com/vfg2006/sales-report-api/pkg/utils"
)

// Service calcula os KPIs do relatório a partir do dataset
type Service struct {
	cfg config.Report
}

func NewService(cfg config.Report) *Service {
	return &Service{cfg: cfg}
}

// Calculate soma as vendas, calcula o lucro médio e o crescimento sobre o período anterior sintético
func (s *Service) Calculate(ctx context.Context, ds *domain.Dataset) (domain.KPISet, error) {
	log.ForContext(ctx).WithField("stage", domain.StageAggregate).Info("Calculando KPIs principais")

	if ds.IsEmpty() {
		return domain.KPISet{}, domain.NewReportError(
			domain.ErrEmptyDataset,
			apiErrors.ErrReportEmptyDataset,
			domain.StageAggregate,
			"average profit is undefined for zero records",
		)
	}

	totalSales := decimal.Zero
	totalProfit := decimal.Zero
	for _, row := range ds.Rows() {
		totalSales = totalSales.Add(decimal.NewFromFloat(row.Sales))
		totalProfit = totalProfit.Add(decimal.NewFromFloat(row.Profit))
	}
	averageProfit := totalProfit.Div(decimal.NewFromInt(int64(ds.Len())))

	previousSales, sampled := s.previousPeriodSales(ds)
	if previousSales.IsZero() {
		return domain.KPISet{}, domain.NewReportError(
			domain.ErrDivisionByZero,
			apiErrors.ErrReportDivisionByZero,
			domain.StageAggregate,
			fmt.Sprintf("previous period sample of %d records sums to zero", sampled),
		)
	}

	growth := totalSales.Sub(previousSales).Div(previousSales).InexactFloat64()

	kpis := domain.KPISet{
		TotalSales:       utils.FormatCurrency(s.cfg.CurrencySymbol, totalSales.InexactFloat64()),
		AverageProfit:    utils.FormatCurrency(s.cfg.CurrencySymbol, averageProfit.InexactFloat64()),
		SalesGrowth:      growth,
		GrowthText:       utils.FormatSignedPercent(growth),
		TotalSalesRaw:    totalSales.InexactFloat64(),
		AverageProfitRaw: averageProfit.InexactFloat64(),
		PreviousSales:    previousSales.InexactFloat64(),
		SampleSize:       sampled,
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"stage":              domain.StageAggregate,
		"report_total_sales": kpis.TotalSales,
		"report_growth":      kpis.GrowthText,
	}).Debug("KPIs calculados")

	return kpis, nil
}

// previousPeriodSales soma uma amostra determinística das vendas como substituto do período anterior
func (s *Service) previousPeriodSales(ds *domain.Dataset) (decimal.Decimal, int) {
	sales := ds.Sales()
	k := sampleSize(len(sales), s.cfg.SampleFraction)

	sum := decimal.Zero
	for _, idx := range sampleIndices(len(sales), k, s.cfg.SampleSeed) {
		sum = sum.Add(decimal.NewFromFloat(sales[idx]))
	}

	return sum, k
}
