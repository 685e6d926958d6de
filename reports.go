package ledgerboard

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Report builders assemble everything one rendered view needs, so that the
// renderer stays a pure formatter.

// LedgerReport is the drill-down view of one ledger: counts of its first
// page of accounts and transactions, plus its migration history.
type LedgerReport struct {
	Ledger           string
	AccountCount     int
	MoreAccounts     bool
	TransactionCount int
	MoreTransactions bool
	Migrations       []Migration
	Diags            Diagnostics
}

// BuildLedgerReport fetches the summary of one ledger. Individual fetch
// failures degrade the corresponding section and are recorded in the
// report's diagnostics.
func BuildLedgerReport(ctx context.Context, c *Client, ledger string) *LedgerReport {
	r := &LedgerReport{Ledger: ledger}

	accounts, more, err := c.Accounts(ctx, ledger)
	if err != nil {
		r.Diags = append(r.Diags, Diag{Ledger: ledger, Err: err})
	} else {
		r.AccountCount, r.MoreAccounts = len(accounts), more
	}

	txs, more, err := c.Transactions(ctx, ledger, TransactionFilter{})
	if err != nil {
		r.Diags = append(r.Diags, Diag{Ledger: ledger, Err: err})
	} else {
		r.TransactionCount, r.MoreTransactions = len(txs), more
	}

	info, err := c.LedgerInfo(ctx, ledger)
	if err != nil {
		r.Diags = append(r.Diags, Diag{Ledger: ledger, Err: err})
	} else {
		r.Migrations = info.Storage.Migrations
	}
	return r
}

// ActivityEntry is the summed posting volume of one asset on one day.
type ActivityEntry struct {
	Date   string // "Jan 02, 2006"
	Asset  string
	Volume decimal.Decimal
}

// AccountReport is the drill-down view of one account: its balances and
// volumes, the transactions it takes part in, and a per-day activity
// summary of those transactions.
type AccountReport struct {
	Account          *Account
	Transactions     []Transaction
	MoreTransactions bool
	Activity         []ActivityEntry
}

// BuildAccountReport fetches one account and its transaction history.
func BuildAccountReport(ctx context.Context, c *Client, ledger, address string) (*AccountReport, error) {
	account, err := c.Account(ctx, ledger, address)
	if err != nil {
		return nil, err
	}
	r := &AccountReport{Account: account}

	txs, more, err := c.Transactions(ctx, ledger, TransactionFilter{Source: address})
	if err != nil {
		// The account itself rendered; the history section degrades.
		return r, nil
	}
	r.MoreTransactions = more
	for _, tx := range txs {
		if !involves(tx, address) {
			continue
		}
		r.Transactions = append(r.Transactions, tx)
	}
	r.Activity = activity(r.Transactions, address)
	return r, nil
}

func involves(tx Transaction, address string) bool {
	for _, p := range tx.Postings {
		if p.Source == address || p.Destination == address {
			return true
		}
	}
	return false
}

// activity groups the account's posting amounts by day and asset, summing
// absolute values. Entries come out in chronological then asset order.
func activity(txs []Transaction, address string) []ActivityEntry {
	type key struct {
		day   time.Time
		asset string
	}
	sums := make(map[key]decimal.Decimal)
	for _, tx := range txs {
		day := tx.Timestamp.Truncate(24 * time.Hour)
		for _, p := range tx.Postings {
			if p.Source != address && p.Destination != address {
				continue
			}
			k := key{day, p.Asset}
			sums[k] = sums[k].Add(p.Amount.Abs())
		}
	}
	keys := make([]key, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if !keys[i].day.Equal(keys[j].day) {
			return keys[i].day.Before(keys[j].day)
		}
		return keys[i].asset < keys[j].asset
	})
	entries := make([]ActivityEntry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, ActivityEntry{Date: k.day.Format("Jan 02, 2006"), Asset: k.asset, Volume: sums[k]})
	}
	return entries
}
