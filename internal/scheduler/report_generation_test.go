package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/sales-report-api/internal/config"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/internal/usecases/reporting/mocks"
)

func newTestConfig(enabled bool, source string) *config.Config {
	return &config.Config{
		ReportSchedule: config.ReportSchedule{
			Enabled:       enabled,
			CronSchedule:  "0 7 * * *",
			Source:        source,
			RetentionDays: 30,
		},
	}
}

func TestReportGenerationService_GenerateReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name     string
		source   string
		setup    func(service *mocks.MockReportService)
		validate func(t *testing.T, err error, status map[string]any)
	}{
		{
			name:   "Gera relatório e remove histórico expirado",
			source: "/data/sales.csv",
			setup: func(service *mocks.MockReportService) {
				service.EXPECT().
					RunSource(gomock.Any(), "/data/sales.csv").
					Return(&domain.Report{ID: "abc123", RecordCount: 10}, nil)
				service.EXPECT().
					PruneHistory(gomock.Any(), 30).
					Return(int64(2), nil)
			},
			validate: func(t *testing.T, err error, status map[string]any) {
				require.NoError(t, err)
				assert.Equal(t, "abc123", status["last_report_id"])
				assert.Equal(t, "", status["last_error"])
				assert.Equal(t, false, status["running"])
			},
		},
		{
			name:   "Erro na remoção do histórico não falha a geração",
			source: "/data/sales.csv",
			setup: func(service *mocks.MockReportService) {
				service.EXPECT().RunSource(gomock.Any(), gomock.Any()).Return(&domain.Report{ID: "def456"}, nil)
				service.EXPECT().PruneHistory(gomock.Any(), 30).Return(int64(0), errors.New("db down"))
			},
			validate: func(t *testing.T, err error, status map[string]any) {
				require.NoError(t, err)
				assert.Equal(t, "def456", status["last_report_id"])
			},
		},
		{
			name:   "Falha do pipeline fica registrada no status",
			source: "/data/sales.csv",
			setup: func(service *mocks.MockReportService) {
				service.EXPECT().
					RunSource(gomock.Any(), gomock.Any()).
					Return(nil, domain.ErrEmptyDataset)
			},
			validate: func(t *testing.T, err error, status map[string]any) {
				assert.ErrorIs(t, err, domain.ErrEmptyDataset)
				assert.Equal(t, "empty dataset", status["last_error"])
				assert.Equal(t, "", status["last_report_id"])
			},
		},
		{
			name:   "Fonte não configurada",
			source: "",
			setup:  func(service *mocks.MockReportService) {},
			validate: func(t *testing.T, err error, status map[string]any) {
				assert.ErrorIs(t, err, ErrMissingSource)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reportService := mocks.NewMockReportService(ctrl)
			tt.setup(reportService)

			service := NewReportGenerationService(reportService, newTestConfig(true, tt.source))

			err := service.GenerateReport(context.Background())
			tt.validate(t, err, service.GetStatus())
		})
	}
}

func TestReportGenerationService_Start(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reportService := mocks.NewMockReportService(ctrl)

	t.Run("Desabilitado não agenda nada", func(t *testing.T) {
		service := NewReportGenerationService(reportService, newTestConfig(false, ""))
		assert.NoError(t, service.Start(context.Background()))
	})

	t.Run("Habilitado sem fonte", func(t *testing.T) {
		service := NewReportGenerationService(reportService, newTestConfig(true, ""))
		assert.ErrorIs(t, service.Start(context.Background()), ErrMissingSource)
	})

	t.Run("Expressão cron inválida", func(t *testing.T) {
		cfg := newTestConfig(true, "/data/sales.csv")
		cfg.ReportSchedule.CronSchedule = "not a cron"

		service := NewReportGenerationService(reportService, cfg)
		assert.Error(t, service.Start(context.Background()))
	})

	t.Run("Habilitado com fonte", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		service := NewReportGenerationService(reportService, newTestConfig(true, "/data/sales.csv"))
		require.NoError(t, service.Start(ctx))
	})
}

func TestReportGenerationService_TriggerManualSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	done := make(chan struct{})
	reportService := mocks.NewMockReportService(ctrl)
	reportService.EXPECT().
		RunSource(gomock.Any(), "/data/sales.csv").
		Return(&domain.Report{ID: "abc123"}, nil)
	reportService.EXPECT().
		PruneHistory(gomock.Any(), 30).
		DoAndReturn(func(context.Context, int) (int64, error) {
			close(done)
			return 0, nil
		})

	service := NewReportGenerationService(reportService, newTestConfig(true, "/data/sales.csv"))
	service.TriggerManualSync()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("geração manual não executou")
	}

	assert.Eventually(t, func() bool {
		return service.GetStatus()["last_report_id"] == "abc123"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestReportGenerationService_GenerateReportRecoversPanic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reportService := mocks.NewMockReportService(ctrl)
	reportService.EXPECT().
		RunSource(gomock.Any(), "/data/sales.csv").
		DoAndReturn(func(context.Context, string) (*domain.Report, error) {
			panic("Cannot create a Decimal from NaN")
		})

	service := NewReportGenerationService(reportService, newTestConfig(true, "/data/sales.csv"))

	var err error
	require.NotPanics(t, func() {
		err = service.GenerateReport(context.Background())
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Decimal from NaN")

	status := service.GetStatus()
	assert.Equal(t, false, status["running"])
	assert.Contains(t, status["last_error"], "panicked")
}
