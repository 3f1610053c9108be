package apiErrors

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/sales-report-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Erros do pipeline de relatório (1000-1999)
	ErrReportLoad           = "REP_001" // Fonte de dados inválida
	ErrReportEmptyDataset   = "REP_002" // Dataset sem vendas
	ErrReportDivisionByZero = "REP_003" // Período anterior sintético zerado
	ErrReportRender         = "REP_004" // Falha ao renderizar gráfico
	ErrReportNotFound       = "REP_005" // Relatório não encontrado
	ErrReportHistoryOff     = "REP_006" // Histórico de relatórios desabilitado

	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrPayloadTooLarge     = "VAL_004" // Arquivo maior que o permitido

	// Erros de roteamento (4000-4999)
	ErrRouteNotFound    = "RTE_001" // Rota inexistente
	ErrMethodNotAllowed = "RTE_002" // Método HTTP não suportado pela rota

	// Erros do servidor (5000-5999)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrCommunication     = "SRV_004" // Erro de comunicação
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrReportLoad:           http.StatusBadRequest,
	ErrReportEmptyDataset:   http.StatusUnprocessableEntity,
	ErrReportDivisionByZero: http.StatusUnprocessableEntity,
	ErrReportRender:         http.StatusInternalServerError,
	ErrReportNotFound:       http.StatusNotFound,
	ErrReportHistoryOff:     http.StatusNotFound,
	ErrInvalidRequest:       http.StatusBadRequest,
	ErrMissingRequiredData:  http.StatusBadRequest,
	ErrInvalidFormat:        http.StatusBadRequest,
	ErrPayloadTooLarge:      http.StatusRequestEntityTooLarge,
	ErrRouteNotFound:        http.StatusNotFound,
	ErrMethodNotAllowed:     http.StatusMethodNotAllowed,
	ErrInternalServer:       http.StatusInternalServerError,
	ErrDatabaseOperation:    http.StatusInternalServerError,
	ErrExternalService:      http.StatusBadGateway,
	ErrCommunication:        http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor retorna o status HTTP associado ao código
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
// Erros do pipeline mantêm o código definido na etapa que falhou
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	var reportErr *domain.ReportError
	if errors.As(err, &reportErr) && reportErr.Code != "" {
		return APIError{
			Code:    reportErr.Code,
			Message: err.Error(),
			Details: map[string]string{"stage": reportErr.Stage},
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}

// WriteFromError escreve a resposta de erro derivada de um erro Go
func WriteFromError(w http.ResponseWriter, err error, fallbackCode string) {
	apiErr := FromError(err, fallbackCode)
	WriteError(w, apiErr.Code, apiErr.Message, apiErr.Details)
}
