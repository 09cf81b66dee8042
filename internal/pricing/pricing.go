package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/thecae/wilpower/internal/models"
)

// FlatShipping is the flat shipping charge applied to every order,
// in dollars.
const FlatShipping = 5

// TaxRater resolves a sales-tax rate for a postal code. The live
// implementation is tax.Client.
type TaxRater interface {
	RateForZip(ctx context.Context, zip string) (decimal.Decimal, error)
}

// Totals is the cost breakdown quoted to a buyer.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeCart prices a cart against a buyer profile. The subtotal uses
// the price snapshot carried on each line, never a live catalog
// lookup. Tax is rate × (subtotal + shipping) rounded to cents when
// the buyer supplied a zip, zero otherwise. A tax-lookup failure is
// returned to the caller rather than quoted as zero tax.
func ComputeCart(ctx context.Context, cart []models.CartItem, buyer models.Profile, rater TaxRater) (Totals, error) {
	subtotal := decimal.Zero
	for _, line := range cart {
		price := decimal.NewFromFloat(line.Price)
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	shipping := decimal.NewFromInt(FlatShipping)

	tax := decimal.Zero
	if buyer.Zip != "" {
		rate, err := rater.RateForZip(ctx, buyer.Zip)
		if err != nil {
			return Totals{}, fmt.Errorf("looking up tax rate for %s: %w", buyer.Zip, err)
		}
		tax = rate.Mul(subtotal.Add(shipping)).Round(2)
	}

	total := subtotal.Add(shipping).Add(tax)

	return Totals{
		Subtotal: subtotal.InexactFloat64(),
		Shipping: shipping.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Total:    total.InexactFloat64(),
	}, nil
}
