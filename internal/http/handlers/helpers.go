package handlers

import (
	"math"
	"strconv"
	"strings"

	"github.com/Mwvndva/byblos/internal/modules/products"
	"github.com/Mwvndva/byblos/pkg/view"
)

// normalizeReturnTo only accepts same-site relative paths.
func normalizeReturnTo(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || !strings.HasPrefix(v, "/") || strings.HasPrefix(v, "//") {
		return ""
	}
	return v
}

// formatPriceMajor renders cents as plain major units for form fields.
func formatPriceMajor(cents int64) string {
	return strconv.FormatFloat(float64(cents)/100.0, 'f', 2, 64)
}

// parsePriceCents turns "1250" or "12.50" into cents.
func parsePriceCents(v string) (int64, bool) {
	v = strings.TrimSpace(strings.ReplaceAll(v, ",", ""))
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return int64(math.Round(f * 100)), true
}

func mapProductRows(items []products.Product) []view.ProductRow {
	out := make([]view.ProductRow, 0, len(items))
	for _, p := range items {
		row := view.ProductRow{
			ID:       p.ID,
			Name:     p.Name,
			Slug:     p.Slug,
			Price:    view.MoneyFromCents(p.PriceCents, p.Currency),
			ImageURL: p.ImageURL,
			Sold:     p.Sold(),
		}
		if p.SoldAt != nil {
			row.SoldAt = p.SoldAt.Format("02 Jan 2006 15:04")
		}
		out = append(out, row)
	}
	return out
}
