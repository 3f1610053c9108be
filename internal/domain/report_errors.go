package domain

import (
	"errors"
	"fmt"
)

// Etapas do pipeline
const (
	StageLoad      = "load"
	StageAggregate = "aggregate"
	StageVisualize = "visualize"
	StageNarrate   = "narrate"
	StageHistory   = "history"
)

// Erros do pipeline de relatório
var (
	ErrLoad           = errors.New("load error")
	ErrEmptyDataset   = errors.New("empty dataset")
	ErrDivisionByZero = errors.New("division by zero")
	ErrRender         = errors.New("chart render error")
	ErrReportNotFound = errors.New("report not found")
	ErrHistoryOff     = errors.New("report history disabled")
)

// ReportError é um erro com contexto adicional da etapa que falhou
type ReportError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Stage   string // Etapa do pipeline
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError cria um novo ReportError
func NewReportError(err error, code string, stage string, details string) *ReportError {
	return &ReportError{
		Err:     err,
		Code:    code,
		Stage:   stage,
		Details: details,
	}
}
