package domain

// Chaves reconhecidas do conjunto de KPIs
const (
	KPITotalSales    = "TotalSales"
	KPIAverageProfit = "AverageProfit"
	KPISalesGrowth   = "SalesGrowth"
	KPIGrowthText    = "GrowthText"
)

// KPISet contém os indicadores calculados em uma execução do relatório
type KPISet struct {
	TotalSales    string  `json:"TotalSales"`
	AverageProfit string  `json:"AverageProfit"`
	SalesGrowth   float64 `json:"SalesGrowth"`
	GrowthText    string  `json:"GrowthText"`

	TotalSalesRaw    float64 `json:"total_sales_raw"`
	AverageProfitRaw float64 `json:"average_profit_raw"`
	PreviousSales    float64 `json:"previous_sales"`
	SampleSize       int     `json:"sample_size"`
}

// Map expõe os KPIs reconhecidos como um mapa nome → valor
func (k KPISet) Map() map[string]any {
	return map[string]any{
		KPITotalSales:    k.TotalSales,
		KPIAverageProfit: k.AverageProfit,
		KPISalesGrowth:   k.SalesGrowth,
		KPIGrowthText:    k.GrowthText,
	}
}
