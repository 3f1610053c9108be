package domain

import "time"

// MonthLayout é o formato do campo Month derivado de cada venda (ano-mês)
const MonthLayout = "2006-01"

// Record representa uma transação de venda como lida da fonte
type Record struct {
	Date    time.Time `json:"date"`
	Region  string    `json:"region"`
	Product string    `json:"product"`
	Sales   float64   `json:"sales"`
	Profit  float64   `json:"profit"`
}

// Row é um Record acompanhado do mês derivado da sua data
type Row struct {
	Record
	Month string `json:"month"`
}

// Dataset é a coleção ordenada de vendas carregada para uma execução do relatório
type Dataset struct {
	rows []Row
}

// MonthOf trunca a data para o período ano-mês
func MonthOf(date time.Time) string {
	return date.Format(MonthLayout)
}

// NewDataset cria o dataset preservando a ordem original e derivando o mês de cada venda
func NewDataset(records []Record) *Dataset {
	rows := make([]Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, Row{
			Record: record,
			Month:  MonthOf(record.Date),
		})
	}

	return &Dataset{rows: rows}
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

func (d *Dataset) IsEmpty() bool {
	return d.Len() == 0
}

// Row retorna a linha na posição i
func (d *Dataset) Row(i int) Row {
	return d.rows[i]
}

// Rows retorna uma cópia das linhas para que o dataset continue imutável
func (d *Dataset) Rows() []Row {
	if d == nil {
		return nil
	}
	rows := make([]Row, len(d.rows))
	copy(rows, d.rows)
	return rows
}

// Sales retorna os valores de venda na ordem original
func (d *Dataset) Sales() []float64 {
	values := make([]float64, 0, d.Len())
	for i := 0; i < d.Len(); i++ {
		values = append(values, d.rows[i].Sales)
	}
	return values
}
