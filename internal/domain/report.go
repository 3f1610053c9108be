package domain

import "time"

// InsightSummary é o texto gerado pelo narrador, com ênfases em markdown
type InsightSummary string

// Report é o resultado completo de uma execução do pipeline
type Report struct {
	ID          string         `json:"id,omitempty"`
	Source      string         `json:"source"`
	Dataset     *Dataset       `json:"-"`
	RecordCount int            `json:"record_count"`
	KPIs        KPISet         `json:"kpis"`
	Charts      ChartBundle    `json:"charts"`
	Insight     InsightSummary `json:"insight"`
	Message     string         `json:"message"`
	GeneratedAt time.Time      `json:"generated_at"`
}

type ReportRunStatus string

const (
	ReportRunStatusSuccess ReportRunStatus = "SUCCESS"
	ReportRunStatusFailed  ReportRunStatus = "FAILED"
)

// ReportRun representa uma execução do relatório armazenada no histórico
type ReportRun struct {
	ID          string          `json:"id"`
	Source      string          `json:"source"`
	Status      ReportRunStatus `json:"status"`
	RecordCount int             `json:"record_count"`
	KPIs        *KPISet         `json:"kpis,omitempty"`
	Charts      ChartBundle     `json:"charts,omitempty"`
	Insight     string          `json:"insight,omitempty"`
	Message     string          `json:"message,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
