// Package message renders order summaries and the deep links that hand them
// off to the customer's email or chat application.
package message

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/pricing"
)

// Subject is the fixed header of every order summary.
const Subject = "Yeni Sipariş"

// Style selects the rendering of section headers.
type Style int

const (
	// Plain is used for email bodies.
	Plain Style = iota
	// Emphasized wraps section headers in chat bold markers.
	Emphasized
)

// StyleFor returns the rendering used by channel.
func StyleFor(channel model.Channel) Style {
	if channel == model.ChannelChat {
		return Emphasized
	}
	return Plain
}

// Summary is everything an order message shows.
type Summary struct {
	Customer model.UserProfile
	Lines    []model.CartLine
	Totals   pricing.Totals
}

// Compose renders s. Both styles produce identical item and total lines.
func Compose(s Summary, style Style) string {
	header := func(text string) string {
		if style == Emphasized {
			return "*" + text + "*"
		}
		return text
	}

	var b strings.Builder
	b.WriteString(header(Subject) + "\n\n")
	b.WriteString(header("Müşteri Bilgileri:") + "\n")
	fmt.Fprintf(&b, "Ad Soyad: %s\n", s.Customer.FullName)
	fmt.Fprintf(&b, "E-posta: %s\n\n", s.Customer.Email)

	b.WriteString(header("Sipariş Detayı:") + "\n")
	for _, line := range s.Lines {
		fmt.Fprintf(&b, "• %dx %s - %s\n", line.Quantity, line.Name, pricing.FormatMoney(pricing.LineNet(line)))
	}

	b.WriteString("\n" + header("Toplam:") + "\n")
	fmt.Fprintf(&b, "Ara Toplam: %s\n", pricing.FormatMoney(s.Totals.Net))
	fmt.Fprintf(&b, "KDV: %s\n", pricing.FormatMoney(s.Totals.VAT))
	fmt.Fprintf(&b, "Genel Toplam: %s", pricing.FormatMoney(s.Totals.Gross))
	return b.String()
}

// ItemLine is an order line read back from a composed message.
type ItemLine struct {
	Quantity int
	Name     string
	Amount   decimal.Decimal
}

var itemLinePattern = regexp.MustCompile(`^• (\d+)x (.+) - €(-?\d+\.\d{2})$`)

// ParseLines extracts the item lines of a composed message.
func ParseLines(msg string) ([]ItemLine, error) {
	var items []ItemLine
	for _, raw := range strings.Split(msg, "\n") {
		m := itemLinePattern.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		qty, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("parse quantity %q: %w", m[1], err)
		}
		amount, err := decimal.NewFromString(m[3])
		if err != nil {
			return nil, fmt.Errorf("parse amount %q: %w", m[3], err)
		}
		items = append(items, ItemLine{Quantity: qty, Name: m[2], Amount: amount})
	}
	return items, nil
}
