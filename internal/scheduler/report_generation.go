// Package scheduler contém os serviços de agendamento do relatório de vendas
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/sales-report-api/internal/config"
	"github.com/vfg2006/sales-report-api/internal/usecases/reporting"
)

var ErrMissingSource = errors.New("report schedule source is empty")

type ReportGenerationConfig struct {
	CronSchedule  string
	SyncEnabled   bool
	Source        string
	RetentionDays int
}

type ReportGenerationService struct {
	scheduler           *gocron.Scheduler
	reportService       reporting.ReportService
	config              ReportGenerationConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastReportID        string
	lastError           string
}

func NewReportGenerationService(reportService reporting.ReportService, cfg *config.Config) *ReportGenerationService {
	generationConfig := ReportGenerationConfig{
		CronSchedule:  cfg.ReportSchedule.CronSchedule,  // Default: 7h da manhã todos os dias
		SyncEnabled:   cfg.ReportSchedule.Enabled,       // Default: desabilitado
		Source:        cfg.ReportSchedule.Source,        // Caminho local ou URL
		RetentionDays: cfg.ReportSchedule.RetentionDays, // Default: 30 dias
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": generationConfig.CronSchedule,
		"source":        generationConfig.Source,
	}).Info("Configuração do agendador de relatórios carregada")

	return &ReportGenerationService{
		scheduler:     gocron.NewScheduler(time.Local),
		reportService: reportService,
		config:        generationConfig,
	}
}

func (s *ReportGenerationService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de geração de relatórios desabilitada por configuração")
		return nil
	}

	if s.config.Source == "" {
		return ErrMissingSource
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de geração de relatórios")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.GenerateReport(ctx); err != nil {
			logrus.WithError(err).Error("Erro na geração agendada do relatório")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar geração de relatórios: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de geração de relatórios")
		s.scheduler.Stop()
	}()

	return nil
}

// GenerateReport executa o pipeline sobre a fonte configurada e remove o histórico expirado.
// Uma única execução acontece por vez; um panic no pipeline vira erro e não derruba o processo.
func (s *ReportGenerationService) GenerateReport(ctx context.Context) (runErr error) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Geração de relatório já está em execução")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	var reportID string
	defer func() {
		if p := recover(); p != nil {
			runErr = fmt.Errorf("report generation panicked: %v", p)
			logrus.WithError(runErr).Error("Panic na geração do relatório")
		}

		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.lastReportID = reportID
		s.lastError = ""
		if runErr != nil {
			s.lastError = runErr.Error()
		}
		s.syncMutex.Unlock()
	}()

	if s.config.Source == "" {
		return ErrMissingSource
	}

	logrus.WithField("source", s.config.Source).Info("Iniciando geração agendada do relatório")

	report, err := s.reportService.RunSource(ctx, s.config.Source)
	if err != nil {
		return err
	}
	reportID = report.ID

	deleted, err := s.reportService.PruneHistory(ctx, s.config.RetentionDays)
	if err != nil {
		logrus.WithError(err).Warn("Erro ao remover histórico antigo de relatórios")
	}

	logrus.WithFields(logrus.Fields{
		"report_id":      report.ID,
		"record_count":   report.RecordCount,
		"pruned_reports": deleted,
	}).Info("Geração agendada do relatório concluída")

	return nil
}

// TriggerManualSync inicia manualmente uma geração do relatório
func (s *ReportGenerationService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Geração de relatório já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando geração manual do relatório")
	go func() {
		if err := s.GenerateReport(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na geração manual do relatório")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *ReportGenerationService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"source":                 s.config.Source,
		"retention_days":         s.config.RetentionDays,
		"running":                s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_report_id":         s.lastReportID,
		"last_error":             s.lastError,
	}
}
