package payment

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Amount is a quantity of money in the smallest unit of its currency
// (cents for USD). Square renders amounts as decimal strings on the
// wire, so the conversion lives here on the type rather than in any
// global encoder state.
type Amount int64

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(strconv.FormatInt(int64(a), 10))), nil
}

// UnmarshalJSON accepts both a quoted string and a bare number, since
// Square has emitted both over API versions.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid money amount %q", s)
	}
	*a = Amount(n)
	return nil
}

// AmountFromDollars converts a dollar figure to cents, rounding to the
// nearest cent.
func AmountFromDollars(dollars float64) Amount {
	cents := decimal.NewFromFloat(dollars).Mul(decimal.NewFromInt(100)).Round(0)
	return Amount(cents.IntPart())
}

// Money pairs an amount with its ISO currency code.
type Money struct {
	Amount   Amount `json:"amount" bson:"amount"`
	Currency string `json:"currency" bson:"currency"`
}
