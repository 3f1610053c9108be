package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"

	"github.com/vfg2006/sales-report-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-report-api/internal/domain"
)

//go:generate mockgen -source=report_run.go -destination=mocks/report_run.go -package=mocks

const (
	reportRunsTable   = "report_runs"
	reportRunsColumns = "id, source, status, record_count, kpis, charts, insight, message, error, created_at"
	defaultListLimit  = 20
	maxListLimit      = 100
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ReportRunRepository interface {
	Save(ctx context.Context, run *domain.ReportRun) error
	GetByID(ctx context.Context, id string) (*domain.ReportRun, error)
	List(ctx context.Context, limit int) ([]*domain.ReportRun, error)
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type reportRunRepository struct {
	conn postgres.Queryer
}

func NewReportRunRepository(conn postgres.Queryer) ReportRunRepository {
	return &reportRunRepository{
		conn: conn,
	}
}

func (r *reportRunRepository) Save(ctx context.Context, run *domain.ReportRun) error {
	query, args, err := buildInsertRunQuery(run)
	if err != nil {
		return err
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *reportRunRepository) GetByID(ctx context.Context, id string) (*domain.ReportRun, error) {
	query, args, err := squirrel.
		Select(reportRunsColumns).
		From(reportRunsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	run, err := scanRun(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear execução: %w", err)
	}

	return run, nil
}

func (r *reportRunRepository) List(ctx context.Context, limit int) ([]*domain.ReportRun, error) {
	query, args, err := buildListRunsQuery(limit)
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	runs := make([]*domain.ReportRun, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear execuções: %w", err)
		}
		runs = append(runs, run)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return runs, nil
}

func (r *reportRunRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	query, args, err := buildDeleteOlderThanQuery(time.Now(), days)
	if err != nil {
		return 0, err
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func buildInsertRunQuery(run *domain.ReportRun) (string, []any, error) {
	var kpisJSON, chartsJSON []byte
	var err error

	if run.KPIs != nil {
		kpisJSON, err = json.Marshal(run.KPIs)
		if err != nil {
			return "", nil, fmt.Errorf("erro ao serializar KPIs para JSON: %w", err)
		}
	}

	if run.Charts != nil {
		chartsJSON, err = json.Marshal(run.Charts)
		if err != nil {
			return "", nil, fmt.Errorf("erro ao serializar gráficos para JSON: %w", err)
		}
	}

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query, args, err := squirrel.
		Insert(reportRunsTable).
		Columns("id", "source", "status", "record_count", "kpis", "charts", "insight", "message", "error", "created_at").
		Values(
			run.ID,
			run.Source,
			string(run.Status),
			run.RecordCount,
			kpisJSON,
			chartsJSON,
			run.Insight,
			run.Message,
			run.Error,
			createdAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return query, args, nil
}

func buildListRunsQuery(limit int) (string, []any, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	query, args, err := squirrel.
		Select(reportRunsColumns).
		From(reportRunsTable).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return query, args, nil
}

func buildDeleteOlderThanQuery(now time.Time, days int) (string, []any, error) {
	cutoff := now.AddDate(0, 0, -days)

	query, args, err := squirrel.
		Delete(reportRunsTable).
		Where(squirrel.Lt{"created_at": cutoff}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return query, args, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*domain.ReportRun, error) {
	run := &domain.ReportRun{}
	var status string
	var kpisJSON, chartsJSON []byte

	err := row.Scan(
		&run.ID,
		&run.Source,
		&status,
		&run.RecordCount,
		&kpisJSON,
		&chartsJSON,
		&run.Insight,
		&run.Message,
		&run.Error,
		&run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	run.Status = domain.ReportRunStatus(status)

	if kpisJSON != nil {
		kpis := &domain.KPISet{}
		if err := json.Unmarshal(kpisJSON, kpis); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de kpis: %w", err)
		}
		run.KPIs = kpis
	}

	if chartsJSON != nil {
		charts := make(domain.ChartBundle)
		if err := json.Unmarshal(chartsJSON, &charts); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de charts: %w", err)
		}
		run.Charts = charts
	}

	return run, nil
}
