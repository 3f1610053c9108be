package narrating

import (
	"context"
	"fmt"

	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/pkg/apiErrors"
	"github.com/vfg2006/sales-report-api/pkg/log"
	"github.com/vfg2006/sales-report-api/pkg/utils"
)

const summaryTemplate = "**AI Insight Summary:** Total sales growth is **%s** compared to the previous period. " +
	"The top performing region is **%s**, and the system recommends: *%s*"

// rule associa uma condição sobre o crescimento a uma recomendação
type rule struct {
	matches   func(growth float64) bool
	recommend func(topRegion, lowProfitProduct string) string
}

// rules é avaliada em ordem; a última regra sempre casa
var rules = []rule{
	{
		matches: func(growth float64) bool { return growth > 0.10 },
		recommend: func(topRegion, _ string) string {
			return fmt.Sprintf("Maintain high volume focus; explore expansion in the top-performing %s region.", topRegion)
		},
	},
	{
		matches: func(growth float64) bool { return growth < -0.05 },
		recommend: func(_, lowProfitProduct string) string {
			return fmt.Sprintf("Urgent action: Investigate profitability issues with product '%s' and consider targeted promotions.", lowProfitProduct)
		},
	},
	{
		matches: func(float64) bool { return true },
		recommend: func(_, _ string) string {
			return "Performance is stable. Focus on increasing profitability margins across all regions and optimize logistics."
		},
	},
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Summarize gera o resumo textual a partir dos KPIs e do dataset
func (s *Service) Summarize(ctx context.Context, ds *domain.Dataset, kpis domain.KPISet) (domain.InsightSummary, error) {
	log.ForContext(ctx).WithField("stage", domain.StageNarrate).Info("Gerando resumo de insights")

	top, ok := domain.Top(domain.GroupSum(ds, domain.ByRegion, domain.SalesOf))
	if !ok {
		return "", domain.NewReportError(domain.ErrEmptyDataset, apiErrors.ErrReportEmptyDataset, domain.StageNarrate,
			"no records to summarize")
	}

	lowest, _ := domain.MinBy(ds, domain.ProfitOf)

	recommendation := Recommend(kpis.SalesGrowth, top.Key, lowest.Product)

	return domain.InsightSummary(fmt.Sprintf(summaryTemplate,
		utils.FormatSignedPercent(kpis.SalesGrowth),
		top.Key,
		recommendation,
	)), nil
}

// Recommend escolhe a recomendação para o crescimento informado
func Recommend(growth float64, topRegion, lowProfitProduct string) string {
	for _, r := range rules {
		if r.matches(growth) {
			return r.recommend(topRegion, lowProfitProduct)
		}
	}
	return ""
}
