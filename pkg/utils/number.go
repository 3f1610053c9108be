package utils

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPrinter = message.NewPrinter(language.English)

// FormatCurrency formata o valor sem casas decimais e com separador de milhar (ex: ₹1,234)
func FormatCurrency(symbol string, value float64) string {
	return symbol + numberPrinter.Sprintf("%.0f", value)
}

// FormatSignedPercent formata uma razão como percentual com sinal e duas casas (ex: +12.34%)
func FormatSignedPercent(ratio float64) string {
	return fmt.Sprintf("%+.2f%%", ratio*100)
}
