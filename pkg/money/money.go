// Package money da formato a importes en pesos mexicanos.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("es-MX"))

// Format "$1,234.50". Dos decimales, separador de miles según es-MX.
func Format(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printer.Sprintf("$%.2f", f)
}

// Plain número sin símbolo ni separadores de miles, para archivos de intercambio: "1234.50".
func Plain(d decimal.Decimal) string {
	return d.StringFixed(2)
}
