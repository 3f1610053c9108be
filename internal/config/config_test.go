package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		wantErr  bool
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name: "Valores padrão do relatório",
			env:  map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "₹", cfg.Report.CurrencySymbol)
				assert.Equal(t, uint64(42), cfg.Report.SampleSeed)
				assert.Equal(t, 0.5, cfg.Report.SampleFraction)
				assert.Equal(t, ',', cfg.Report.Delimiter())
				assert.Equal(t, "#054ADA", cfg.Report.BarColor)
				assert.NotEmpty(t, cfg.Report.DateLayouts)
				assert.False(t, cfg.Database.Enabled)
				assert.Equal(t, 10, cfg.Database.MaxOpenConns)
				assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxIdleTime)
				assert.False(t, cfg.ReportSchedule.Enabled)
				assert.Equal(t, "0 7 * * *", cfg.ReportSchedule.CronSchedule)
			},
		},
		{
			name: "Variáveis de ambiente sobrescrevem os padrões",
			env: map[string]string{
				"REPORT_CURRENCY_SYMBOL":      "$",
				"REPORT_SAMPLE_SEED":          "7",
				"REPORT_CSV_DELIMITER":        ";",
				"DATABASE_USER":               "report",
				"DATABASE_PASSWORD":           "secret",
				"DATABASE_URL":                "db:5432/reports",
				"DATABASE_CONN_MAX_IDLE_TIME": "30s",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "$", cfg.Report.CurrencySymbol)
				assert.Equal(t, uint64(7), cfg.Report.SampleSeed)
				assert.Equal(t, ';', cfg.Report.Delimiter())
				assert.Equal(t, "postgres://report:secret@db:5432/reports", cfg.Database.DSN)
				assert.Equal(t, 30*time.Second, cfg.Database.ConnMaxIdleTime)
			},
		},
		{
			name:    "Fração de amostra inválida",
			env:     map[string]string{"REPORT_SAMPLE_FRACTION": "1.5"},
			wantErr: true,
		},
		{
			name:    "Separador com mais de um caractere",
			env:     map[string]string{"REPORT_CSV_DELIMITER": ";;"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := NewConfig()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestDefaultReport(t *testing.T) {
	assert.NoError(t, DefaultReport().Validate())
}
