package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/sales-report-api/pkg/utils"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	Report         Report         `mapstructure:",squash"`
	ReportSchedule ReportSchedule `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Enabled  bool   `mapstructure:"database_enabled"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`

	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	ConnMaxIdleTime time.Duration `mapstructure:"database_conn_max_idle_time"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Report contém os parâmetros do pipeline de relatório de vendas
type Report struct {
	CurrencySymbol string   `mapstructure:"report_currency_symbol"`
	SampleSeed     uint64   `mapstructure:"report_sample_seed"`
	SampleFraction float64  `mapstructure:"report_sample_fraction"`
	DateLayouts    []string `mapstructure:"report_date_layouts"`
	CSVDelimiter   string   `mapstructure:"report_csv_delimiter"`
	ChartWidth     float64  `mapstructure:"report_chart_width_inches"`
	ChartHeight    float64  `mapstructure:"report_chart_height_inches"`
	BarColor       string   `mapstructure:"report_bar_color"`
	MaxUploadMB    int64    `mapstructure:"report_max_upload_mb"`
}

type ReportSchedule struct {
	Enabled       bool   `mapstructure:"report_schedule_enabled"`
	CronSchedule  string `mapstructure:"report_schedule_cron"`
	Source        string `mapstructure:"report_schedule_source"`
	RetentionDays int    `mapstructure:"report_history_retention_days"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:4001")

	viper.SetDefault("DATABASE_ENABLED", false)
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/sales_report?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_CONN_MAX_IDLE_TIME", "5m")

	viper.SetDefault("REPORT_CURRENCY_SYMBOL", "₹")
	viper.SetDefault("REPORT_SAMPLE_SEED", 42)
	viper.SetDefault("REPORT_SAMPLE_FRACTION", 0.5)
	viper.SetDefault("REPORT_DATE_LAYOUTS", utils.DefaultDateLayouts)
	viper.SetDefault("REPORT_CSV_DELIMITER", ",")
	viper.SetDefault("REPORT_CHART_WIDTH_INCHES", 6)
	viper.SetDefault("REPORT_CHART_HEIGHT_INCHES", 4)
	viper.SetDefault("REPORT_BAR_COLOR", "#054ADA")
	viper.SetDefault("REPORT_MAX_UPLOAD_MB", 10)

	viper.SetDefault("REPORT_SCHEDULE_ENABLED", false)
	viper.SetDefault("REPORT_SCHEDULE_CRON", "0 7 * * *") // Todos os dias às 7h da manhã
	viper.SetDefault("REPORT_SCHEDULE_SOURCE", "")
	viper.SetDefault("REPORT_HISTORY_RETENTION_DAYS", 30)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Report.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate verifica os parâmetros do relatório que não possuem valor padrão seguro
func (r Report) Validate() error {
	if r.SampleFraction <= 0 || r.SampleFraction > 1 {
		return fmt.Errorf("config: report_sample_fraction must be in (0, 1], got %v", r.SampleFraction)
	}
	if r.ChartWidth <= 0 || r.ChartHeight <= 0 {
		return fmt.Errorf("config: chart dimensions must be positive")
	}
	if len([]rune(r.CSVDelimiter)) != 1 {
		return fmt.Errorf("config: report_csv_delimiter must be a single character, got %q", r.CSVDelimiter)
	}
	return nil
}

// Delimiter retorna o separador de colunas das fontes de texto
func (r Report) Delimiter() rune {
	return []rune(r.CSVDelimiter)[0]
}

// DefaultReport retorna a configuração padrão do relatório, usada pela CLI e pelos testes
func DefaultReport() Report {
	return Report{
		CurrencySymbol: "₹",
		SampleSeed:     42,
		SampleFraction: 0.5,
		DateLayouts:    utils.DefaultDateLayouts,
		CSVDelimiter:   ",",
		ChartWidth:     6,
		ChartHeight:    4,
		BarColor:       "#054ADA",
		MaxUploadMB:    10,
	}
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
