package reporting

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/vfg2006/sales-report-api/infrastructure/repository"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/internal/usecases/loading"
	"github.com/vfg2006/sales-report-api/pkg/apiErrors"
	"github.com/vfg2006/sales-report-api/pkg/log"
	"github.com/vfg2006/sales-report-api/pkg/utils"
)

const CompletionMessage = "Process Completed! Data ready for download."

type Service struct {
	loader     loading.Loader
	aggregator Aggregator
	visualizer Visualizer
	narrator   Narrator
	history    repository.ReportRunRepository
	now        func() time.Time
}

func NewService(loader loading.Loader, aggregator Aggregator, visualizer Visualizer, narrator Narrator) *Service {
	return &Service{
		loader:     loader,
		aggregator: aggregator,
		visualizer: visualizer,
		narrator:   narrator,
		now:        time.Now,
	}
}

// WithHistory habilita o registro das execuções no repositório
func (s *Service) WithHistory(repo repository.ReportRunRepository) *Service {
	s.history = repo
	return s
}

func (s *Service) HistoryEnabled() bool {
	return s.history != nil
}

func (s *Service) Run(ctx context.Context, name string, r io.Reader) (*domain.Report, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "generate report id")
	}

	ctx = log.WithReportID(ctx, id)

	ds, err := s.loader.Load(ctx, name, r)
	if err != nil {
		s.recordFailure(ctx, id, name, err)
		return nil, err
	}

	return s.generate(ctx, id, name, ds)
}

func (s *Service) RunSource(ctx context.Context, source string) (*domain.Report, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "generate report id")
	}

	ctx = log.WithReportID(ctx, id)

	var ds *domain.Dataset
	if isURL(source) {
		ds, err = s.loader.LoadURL(ctx, source)
	} else {
		ds, err = s.loader.LoadFile(ctx, source)
	}
	if err != nil {
		s.recordFailure(ctx, id, source, err)
		return nil, err
	}

	return s.generate(ctx, id, source, ds)
}

// generate executa as etapas seguintes à leitura, em ordem; qualquer falha interrompe a execução
func (s *Service) generate(ctx context.Context, id, source string, ds *domain.Dataset) (*domain.Report, error) {
	kpis, err := s.aggregator.Calculate(ctx, ds)
	if err != nil {
		s.recordFailure(ctx, id, source, err)
		return nil, err
	}

	charts, err := s.visualizer.Generate(ctx, ds)
	if err != nil {
		s.recordFailure(ctx, id, source, err)
		return nil, err
	}

	insight, err := s.narrator.Summarize(ctx, ds, kpis)
	if err != nil {
		s.recordFailure(ctx, id, source, err)
		return nil, err
	}

	report := &domain.Report{
		ID:          id,
		Source:      source,
		Dataset:     ds,
		RecordCount: ds.Len(),
		KPIs:        kpis,
		Charts:      charts,
		Insight:     insight,
		Message:     Finalize(ctx),
		GeneratedAt: s.now().UTC(),
	}

	s.record(ctx, &domain.ReportRun{
		ID:          report.ID,
		Source:      report.Source,
		Status:      domain.ReportRunStatusSuccess,
		RecordCount: report.RecordCount,
		KPIs:        &report.KPIs,
		Charts:      report.Charts,
		Insight:     string(report.Insight),
		Message:     report.Message,
		CreatedAt:   report.GeneratedAt,
	})

	return report, nil
}

// Finalize encerra o pipeline e retorna a mensagem de conclusão
func Finalize(ctx context.Context) string {
	log.ForContext(ctx).Info("Relatório montado com sucesso")
	return CompletionMessage
}

func (s *Service) ListRuns(ctx context.Context, limit int) ([]*domain.ReportRun, error) {
	if !s.HistoryEnabled() {
		return nil, historyDisabled()
	}

	return s.history.List(ctx, limit)
}

func (s *Service) GetRun(ctx context.Context, id string) (*domain.ReportRun, error) {
	if !s.HistoryEnabled() {
		return nil, historyDisabled()
	}

	run, err := s.history.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, domain.NewReportError(domain.ErrReportNotFound, apiErrors.ErrReportNotFound, domain.StageHistory,
			fmt.Sprintf("id %s", id))
	}

	return run, nil
}

func (s *Service) PruneHistory(ctx context.Context, days int) (int64, error) {
	if !s.HistoryEnabled() || days <= 0 {
		return 0, nil
	}

	deleted, err := s.history.DeleteOlderThan(ctx, days)
	if err != nil {
		return 0, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"deleted": deleted,
		"days":    days,
	}).Info("Histórico de relatórios antigo removido")

	return deleted, nil
}

func (s *Service) recordFailure(ctx context.Context, id, source string, cause error) {
	logger := log.ForContext(ctx).WithError(cause).WithField("source", source)

	var reportErr *domain.ReportError
	if errors.As(cause, &reportErr) {
		logger = logger.WithField("stage", reportErr.Stage)
	}
	logger.Error("Falha ao gerar relatório")

	s.record(ctx, &domain.ReportRun{
		ID:        id,
		Source:    source,
		Status:    domain.ReportRunStatusFailed,
		Error:     cause.Error(),
		CreatedAt: s.now().UTC(),
	})
}

// record salva a execução no histórico; falhas do histórico não interrompem o relatório
func (s *Service) record(ctx context.Context, run *domain.ReportRun) {
	if !s.HistoryEnabled() {
		return
	}

	if err := s.history.Save(ctx, run); err != nil {
		log.ForContext(ctx).WithError(err).WithField("report_id", run.ID).Warn("Erro ao salvar execução no histórico")
	}
}

func historyDisabled() error {
	return domain.NewReportError(domain.ErrHistoryOff, apiErrors.ErrReportHistoryOff, domain.StageHistory,
		"set DATABASE_ENABLED=true to keep report runs")
}

func isURL(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
