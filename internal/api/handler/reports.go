package handler

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-report-api/pkg/apiErrors"
	"github.com/vfg2006/sales-report-api/pkg/log"
)

const (
	defaultUploadName = "upload.csv"
	multipartMemory   = 8 << 20
)

// CreateReport executa o pipeline sobre o arquivo enviado (campo multipart "file" ou corpo bruto)
func CreateReport(service reporting.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("INIT - CreateReport")

		name, content, err := readUpload(r)
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				apiErrors.WriteError(w, apiErrors.ErrPayloadTooLarge, "Arquivo maior que o permitido", map[string]int64{"limit_bytes": maxErr.Limit})
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
			return
		}

		report, err := service.Run(r.Context(), name, content)
		if err != nil {
			logger.WithError(err).Warn("Erro ao gerar relatório")
			apiErrors.WriteFromError(w, err, apiErrors.ErrInternalServer)
			return
		}

		writeJSON(w, r, http.StatusCreated, report)
	}
}

// readUpload lê o arquivo inteiro para memória; o limite vem do middleware MaxBodySize
func readUpload(r *http.Request) (string, io.Reader, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return "", nil, err
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			return "", nil, errors.New("multipart field 'file' is required")
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return "", nil, err
		}

		return header.Filename, bytes.NewReader(data), nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", nil, err
	}
	if len(data) == 0 {
		return "", nil, errors.New("request body is empty")
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = defaultUploadName
	}

	return name, bytes.NewReader(data), nil
}

// ListReports lista as últimas execuções do relatório
func ListReports(service reporting.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro limit inválido", nil)
				return
			}
			limit = parsed
		}

		runs, err := service.ListRuns(r.Context(), limit)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao listar execuções")
			apiErrors.WriteFromError(w, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusOK, runs)
	}
}

// GetReport retorna uma execução do histórico
func GetReport(service reporting.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		run, err := service.GetRun(r.Context(), id)
		if err != nil {
			apiErrors.WriteFromError(w, err, apiErrors.ErrDatabaseOperation)
			return
		}

		writeJSON(w, r, http.StatusOK, run)
	}
}

// GetReportChart devolve o PNG de um gráfico armazenado
func GetReportChart(service reporting.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())
		chart := strings.TrimSuffix(params.ByName("chart"), ".png")

		if chart != domain.RegionChart && chart != domain.ProductChart {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Gráfico inválido. Valores aceitos: RegionChart, ProductChart", nil)
			return
		}

		run, err := service.GetRun(r.Context(), params.ByName("id"))
		if err != nil {
			apiErrors.WriteFromError(w, err, apiErrors.ErrDatabaseOperation)
			return
		}

		encoded, ok := run.Charts[chart]
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrReportNotFound, "Gráfico não disponível para esta execução", nil)
			return
		}

		image, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Gráfico armazenado inválido", nil)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(len(image)))
		_, _ = w.Write(image)
	}
}
