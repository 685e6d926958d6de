package ledgerboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Asset is a parsed asset code. The wire form carries an optional decimal
// precision suffix, e.g. "USD/2" or "ETH/18"; a bare code like "GEM" has
// precision 0.
type Asset struct {
	code      string
	precision int32
	explicit  bool // true when the precision suffix was present
}

// CommonAssets is the list offered by the transaction form.
var CommonAssets = []string{"USD/2", "EUR/2", "JPY/0", "GBP/2", "PHP/2", "BTC/8", "ETH/18"}

// ParseAsset parses an asset code of the form "CODE" or "CODE/precision".
func ParseAsset(s string) (Asset, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Asset{}, fmt.Errorf("empty asset code")
	}
	code, suffix, found := strings.Cut(s, "/")
	if code == "" {
		return Asset{}, fmt.Errorf("invalid asset code %q", s)
	}
	if !found {
		return Asset{code: code}, nil
	}
	p, err := strconv.ParseInt(suffix, 10, 32)
	if err != nil || p < 0 {
		return Asset{}, fmt.Errorf("invalid precision in asset code %q", s)
	}
	return Asset{code: code, precision: int32(p), explicit: true}, nil
}

// Code returns the currency/unit half of the asset, without the precision
// suffix.
func (a Asset) Code() string { return a.code }

// Precision returns the declared number of decimal digits of the minor unit.
func (a Asset) Precision() int32 { return a.precision }

// String returns the wire form of the asset code.
func (a Asset) String() string {
	if a.explicit {
		return fmt.Sprintf("%s/%d", a.code, a.precision)
	}
	return a.code
}

// MinorUnits converts a major-unit amount into the integer minor-unit
// quantity the API expects, scaling by 10^precision. Amounts with more
// fractional digits than the asset allows are rejected rather than rounded.
func (a Asset) MinorUnits(amount decimal.Decimal) (decimal.Decimal, error) {
	minor := amount.Shift(a.precision)
	if !minor.IsInteger() {
		return decimal.Decimal{}, fmt.Errorf("amount %s has more than %d decimal digits for asset %s", amount, a.precision, a)
	}
	return minor, nil
}

// FormatAmount renders a minor-unit quantity as a human-readable major-unit
// value. Codes that name an ISO currency with a matching fraction are
// formatted with the currency's own formatter; everything else falls back
// to a plain decimal shift.
func (a Asset) FormatAmount(minor decimal.Decimal) string {
	if c := money.GetCurrency(a.code); c != nil && int32(c.Fraction) == a.precision && minor.BigInt().IsInt64() {
		return money.New(minor.IntPart(), a.code).Display()
	}
	return fmt.Sprintf("%s %s", minor.Shift(-a.precision), a.code)
}
