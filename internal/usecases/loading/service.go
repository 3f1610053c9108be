package loading

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/vfg2006/sales-report-api/internal/config"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/pkg/apiErrors"
	"github.com/vfg2006/sales-report-api/pkg/log"
	"github.com/vfg2006/sales-report-api/pkg/utils"
)

// Colunas obrigatórias, comparadas sem diferenciar maiúsculas
const (
	columnDate    = "date"
	columnRegion  = "region"
	columnProduct = "product"
	columnSales   = "sales"
	columnProfit  = "profit"
)

var requiredColumns = []string{columnDate, columnRegion, columnProduct, columnSales, columnProfit}

const xlsxExtension = ".xlsx"

type Service struct {
	cfg config.Report
}

func NewService(cfg config.Report) *Service {
	return &Service{cfg: cfg}
}

// Load lê a fonte e cria o Dataset, mantendo todas as linhas na ordem original
func (s *Service) Load(ctx context.Context, name string, r io.Reader) (*domain.Dataset, error) {
	log.ForContext(ctx).WithField("source", name).Info("Lendo dados de vendas")

	var (
		records []domain.Record
		err     error
	)

	if strings.EqualFold(filepath.Ext(name), xlsxExtension) {
		records, err = s.readXLSX(r)
	} else {
		records, err = s.readDelimited(r)
	}
	if err != nil {
		return nil, err
	}

	dataset := domain.NewDataset(records)
	log.ForContext(ctx).WithFields(log.Fields{
		"source":              name,
		"report_record_count": dataset.Len(),
	}).Debug("Dados de vendas carregados")

	return dataset, nil
}

// LoadFile abre o arquivo local e delega para Load
func (s *Service) LoadFile(ctx context.Context, filePath string) (*domain.Dataset, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, loadError(errors.Wrapf(err, "open source %s", filePath).Error())
	}
	defer file.Close()

	return s.Load(ctx, filePath, file)
}

// LoadURL baixa a fonte e delega para Load
func (s *Service) LoadURL(ctx context.Context, sourceURL string) (*domain.Dataset, error) {
	parsed, err := url.Parse(sourceURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, loadError(fmt.Sprintf("invalid source url %q", sourceURL))
	}

	data, err := utils.MakeRequest(ctx, sourceURL)
	if err != nil {
		return nil, loadError(errors.Wrapf(err, "fetch source %s", sourceURL).Error())
	}

	return s.Load(ctx, path.Base(parsed.Path), bytes.NewReader(data))
}

func (s *Service) readDelimited(r io.Reader) ([]domain.Record, error) {
	reader := csv.NewReader(r)
	reader.Comma = s.delimiter()
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, loadError("missing header row")
	}
	if err != nil {
		return nil, loadError(fmt.Sprintf("read header: %v", err))
	}

	columns, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0)
	for line := 1; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, loadError(fmt.Sprintf("line %d: %v", line, err))
		}

		record, err := s.parseRow(row, columns, line, nil)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func (s *Service) readXLSX(r io.Reader) ([]domain.Record, error) {
	file, err := excelize.OpenReader(r, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, loadError(fmt.Sprintf("open workbook: %v", err))
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, loadError("workbook has no sheets")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, loadError(fmt.Sprintf("read sheet %s: %v", sheets[0], err))
	}
	if len(rows) == 0 {
		return nil, loadError("missing header row")
	}

	columns, err := indexColumns(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		record, err := s.parseRow(row, columns, i+1, excelSerialDate)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// parseRow converte uma linha em Record; fallbackDate trata formatos de data específicos da fonte
func (s *Service) parseRow(row []string, columns map[string]int, line int, fallbackDate func(string) (time.Time, bool)) (domain.Record, error) {
	value := func(column string) (string, error) {
		idx := columns[column]
		if idx >= len(row) {
			return "", loadError(fmt.Sprintf("line %d: missing value for column %s", line, column))
		}
		return strings.TrimSpace(row[idx]), nil
	}

	var record domain.Record
	for _, column := range requiredColumns {
		raw, err := value(column)
		if err != nil {
			return domain.Record{}, err
		}

		switch column {
		case columnDate:
			date, err := utils.ParseDate(raw, s.cfg.DateLayouts...)
			if err != nil {
				if fallbackDate == nil {
					return domain.Record{}, loadError(fmt.Sprintf("line %d: %v", line, err))
				}
				parsed, ok := fallbackDate(raw)
				if !ok {
					return domain.Record{}, loadError(fmt.Sprintf("line %d: %v", line, err))
				}
				date = parsed
			}
			record.Date = date
		case columnRegion:
			record.Region = raw
		case columnProduct:
			record.Product = raw
		case columnSales:
			sales, err := parseAmount(raw)
			if err != nil {
				return domain.Record{}, loadError(fmt.Sprintf("line %d: invalid Sales %q", line, raw))
			}
			if sales < 0 {
				return domain.Record{}, loadError(fmt.Sprintf("line %d: negative Sales %v", line, sales))
			}
			record.Sales = sales
		case columnProfit:
			profit, err := parseAmount(raw)
			if err != nil {
				return domain.Record{}, loadError(fmt.Sprintf("line %d: invalid Profit %q", line, raw))
			}
			record.Profit = profit
		}
	}

	return record, nil
}

func (s *Service) delimiter() rune {
	if s.cfg.CSVDelimiter == "" {
		return ','
	}
	return []rune(s.cfg.CSVDelimiter)[0]
}

// indexColumns mapeia cada coluna obrigatória para sua posição no cabeçalho
func indexColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, exists := columns[key]; !exists {
			columns[key] = i
		}
	}

	missing := make([]string, 0)
	for _, column := range requiredColumns {
		if _, ok := columns[column]; !ok {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return nil, loadError(fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")))
	}

	return columns, nil
}

// parseAmount aceita apenas números finitos; NaN e Inf não são valores monetários
func parseAmount(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite amount %q", raw)
	}
	return v, nil
}

// excelSerialDate interpreta datas gravadas como número de série do Excel
func excelSerialDate(raw string) (time.Time, bool) {
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil || serial <= 0 {
		return time.Time{}, false
	}

	date, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, false
	}

	return date, true
}

func loadError(details string) error {
	return domain.NewReportError(domain.ErrLoad, apiErrors.ErrReportLoad, domain.StageLoad, details)
}
