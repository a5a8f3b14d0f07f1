// Package pricing derives net, VAT and gross amounts from cart lines.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
)

const currencySymbol = "€"

// Totals aggregates the amounts of a cart snapshot.
type Totals struct {
	Net   decimal.Decimal
	VAT   decimal.Decimal
	Gross decimal.Decimal
}

// LineNet returns unit price multiplied by quantity.
func LineNet(line model.CartLine) decimal.Decimal {
	return line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// LineVAT returns the tax amount of the line.
func LineVAT(line model.CartLine) decimal.Decimal {
	return LineNet(line).Mul(decimal.NewFromInt(int64(line.VATRate))).Shift(-2)
}

// LineGross returns the line amount including tax.
func LineGross(line model.CartLine) decimal.Decimal {
	return LineNet(line).Add(LineVAT(line))
}

// NetTotal sums the line amounts before tax.
func NetTotal(lines []model.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(LineNet(line))
	}
	return sum
}

// VATTotal sums the tax of every line.
func VATTotal(lines []model.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(LineVAT(line))
	}
	return sum
}

// GrossTotal is NetTotal plus VATTotal.
func GrossTotal(lines []model.CartLine) decimal.Decimal {
	return NetTotal(lines).Add(VATTotal(lines))
}

// Calculate computes all totals in one pass. No rounding is applied.
func Calculate(lines []model.CartLine) Totals {
	t := Totals{Net: decimal.Zero, VAT: decimal.Zero}
	for _, line := range lines {
		t.Net = t.Net.Add(LineNet(line))
		t.VAT = t.VAT.Add(LineVAT(line))
	}
	t.Gross = t.Net.Add(t.VAT)
	return t
}

// OrderTotal returns the gross amount of persisted order items.
func OrderTotal(items []model.OrderItem) decimal.Decimal {
	lines := make([]model.CartLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, model.CartLine{UnitPrice: item.Price, VATRate: item.VATRate, Quantity: item.Quantity})
	}
	return GrossTotal(lines)
}

// FormatAmount renders d with two decimals, rounding half away from zero.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatMoney renders d as a euro amount, e.g. "€47.58".
func FormatMoney(d decimal.Decimal) string {
	return currencySymbol + FormatAmount(d)
}
