package ledgerboard

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
)

// Holder is one account with a non-zero balance of an asset.
type Holder struct {
	Ledger  string
	Account string
	Balance decimal.Decimal
}

// AssetDetail is the aggregate position of one asset across all ledgers.
type AssetDetail struct {
	TotalSupply decimal.Decimal
	Holders     []Holder
}

// AssetIndex is the asset universe observed across every ledger's account
// balances. Building it is a full O(ledgers x accounts) scan, so sessions
// memoize it (see Session.AssetIndex).
type AssetIndex struct {
	details map[string]*AssetDetail
	diags   Diagnostics
}

// BuildAssetIndex scans every account of every ledger and aggregates the
// balances per asset. A ledger or account that fails to fetch is recorded
// in the diagnostics and skipped; err is non-nil only when the ledger list
// itself cannot be fetched.
func BuildAssetIndex(ctx context.Context, c *Client) (*AssetIndex, error) {
	ledgers, err := c.ListLedgers(ctx)
	if err != nil {
		return nil, err
	}

	idx := &AssetIndex{details: make(map[string]*AssetDetail)}
	for _, l := range ledgers {
		accounts, _, err := c.Accounts(ctx, l.Name)
		if err != nil {
			idx.diags = append(idx.diags, Diag{Ledger: l.Name, Err: err})
			continue
		}
		for _, account := range accounts {
			// The list payload may omit balances; the single-account
			// endpoint always carries them.
			detail, err := c.Account(ctx, l.Name, account.Address)
			if err != nil {
				idx.diags = append(idx.diags, Diag{Ledger: l.Name, Err: err})
				continue
			}
			for asset, balance := range detail.Balances {
				d := idx.details[asset]
				if d == nil {
					d = &AssetDetail{}
					idx.details[asset] = d
				}
				d.TotalSupply = d.TotalSupply.Add(balance)
				if !balance.IsZero() {
					d.Holders = append(d.Holders, Holder{Ledger: l.Name, Account: account.Address, Balance: balance})
				}
			}
		}
	}

	for _, d := range idx.details {
		sort.Slice(d.Holders, func(i, j int) bool {
			if d.Holders[i].Ledger != d.Holders[j].Ledger {
				return d.Holders[i].Ledger < d.Holders[j].Ledger
			}
			return d.Holders[i].Account < d.Holders[j].Account
		})
	}
	return idx, nil
}

// Assets returns the asset codes of the universe, sorted.
func (x *AssetIndex) Assets() []string {
	assets := make([]string, 0, len(x.details))
	for a := range x.details {
		assets = append(assets, a)
	}
	sort.Strings(assets)
	return assets
}

// Detail returns the aggregate position of one asset.
func (x *AssetIndex) Detail(asset string) (AssetDetail, bool) {
	d, ok := x.details[asset]
	if !ok {
		return AssetDetail{}, false
	}
	return *d, true
}

// Diagnostics returns the fetch failures recorded during the scan.
func (x *AssetIndex) Diagnostics() Diagnostics { return x.diags }
