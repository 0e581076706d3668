package domain

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pricePrinter = message.NewPrinter(language.English)

// priceSuffix maps a price period to its display suffix. Total prices carry
// no suffix.
var priceSuffix = map[string]string{
	PriceHourly:  "/hour",
	PriceDaily:   "/day",
	PriceWeekly:  "/week",
	PriceMonthly: "/month",
	PriceYearly:  "/year",
}

// FormatPrice renders a listing price for result cards, e.g. "1,250,000 SAR"
// or "85 USD/day". A nil price yields nil so the card field degrades cleanly.
func FormatPrice(price *float64, currency, priceType string) *string {
	if price == nil {
		return nil
	}
	s := pricePrinter.Sprintf("%.0f", *price)
	if currency != "" {
		s += " " + currency
	}
	s += priceSuffix[priceType]
	return &s
}
