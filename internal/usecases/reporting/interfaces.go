package reporting

import (
	"context"
	"io"

	"github.com/vfg2006/sales-report-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/interfaces.go -package=mocks

// ReportService executa o pipeline de relatório e consulta o histórico de execuções
type ReportService interface {
	// Run executa o pipeline sobre uma fonte já aberta
	Run(ctx context.Context, name string, r io.Reader) (*domain.Report, error)

	// RunSource executa o pipeline sobre um caminho local ou URL http(s)
	RunSource(ctx context.Context, source string) (*domain.Report, error)

	ListRuns(ctx context.Context, limit int) ([]*domain.ReportRun, error)
	GetRun(ctx context.Context, id string) (*domain.ReportRun, error)

	// PruneHistory remove execuções mais antigas que o número de dias informado
	PruneHistory(ctx context.Context, days int) (int64, error)
	HistoryEnabled() bool
}

type Aggregator interface {
	Calculate(ctx context.Context, ds *domain.Dataset) (domain.KPISet, error)
}

type Visualizer interface {
	Generate(ctx context.Context, ds *domain.Dataset) (domain.ChartBundle, error)
}

type Narrator interface {
	Summarize(ctx context.Context, ds *domain.Dataset, kpis domain.KPISet) (domain.InsightSummary, error)
}
