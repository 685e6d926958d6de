package ledgerboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Diag records one ledger's fetch failure during an aggregation.
type Diag struct {
	Ledger string
	Err    error
}

func (d Diag) String() string { return fmt.Sprintf("ledger %s: %v", d.Ledger, d.Err) }

// Diagnostics collects the per-ledger failures of one fan-out. A non-empty
// list means the result is partial, which is distinct from a genuinely
// empty result.
type Diagnostics []Diag

// FetchFunc fetches one ledger's records. Implementations tag each record
// with the ledger and report whether the page was truncated.
type FetchFunc[T any] func(ctx context.Context, ledger string) ([]T, bool, error)

// FetchAcrossLedgers runs fetch against a single ledger when ledgerFilter
// is set, or against every ledger known to the server otherwise.
//
// The all-ledger fan-out runs concurrently but concatenates results in
// ledger-listing order, so tables stay deterministic. One ledger's failure
// is recorded in the diagnostics and never suppresses the others' data;
// err is non-nil only when the ledger list itself cannot be fetched.
func FetchAcrossLedgers[T any](ctx context.Context, c *Client, ledgerFilter string, fetch FetchFunc[T]) (records []T, diags Diagnostics, hasMore bool, err error) {
	if ledgerFilter != "" {
		records, hasMore, ferr := fetch(ctx, ledgerFilter)
		if ferr != nil {
			return nil, Diagnostics{{Ledger: ledgerFilter, Err: ferr}}, false, nil
		}
		return records, nil, hasMore, nil
	}

	ledgers, err := c.ListLedgers(ctx)
	if err != nil {
		return nil, nil, false, err
	}

	type slot struct {
		records []T
		hasMore bool
		err     error
	}
	slots := make([]slot, len(ledgers))
	g := new(errgroup.Group)
	for i, l := range ledgers {
		g.Go(func() error {
			records, more, err := fetch(ctx, l.Name)
			slots[i] = slot{records, more, err}
			return nil
		})
	}
	g.Wait() // fetch errors live in the slots

	for i, s := range slots {
		if s.err != nil {
			diags = append(diags, Diag{Ledger: ledgers[i].Name, Err: s.err})
			continue
		}
		records = append(records, s.records...)
		hasMore = hasMore || s.hasMore
	}
	return records, diags, hasMore, nil
}

// AccountsAcross lists accounts from one ledger, or from all of them when
// ledgerFilter is empty.
func (c *Client) AccountsAcross(ctx context.Context, ledgerFilter string) ([]Account, Diagnostics, bool, error) {
	return FetchAcrossLedgers(ctx, c, ledgerFilter, c.Accounts)
}

// TransactionsAcross lists transactions matching filter from one ledger, or
// from all of them when ledgerFilter is empty. The filter is forwarded
// uniformly to every per-ledger call.
func (c *Client) TransactionsAcross(ctx context.Context, ledgerFilter string, filter TransactionFilter) ([]Transaction, Diagnostics, bool, error) {
	return FetchAcrossLedgers(ctx, c, ledgerFilter, func(ctx context.Context, ledger string) ([]Transaction, bool, error) {
		return c.Transactions(ctx, ledger, filter)
	})
}
