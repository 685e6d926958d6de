package ledgerboard

import (
	"time"

	"github.com/shopspring/decimal"
)

// This file maps the ledger API's wire payloads to explicit structs.
// The mapping happens once, at the client boundary; nothing downstream
// touches raw JSON.

// Ledger is one isolated namespace of accounts and transactions on the
// remote service.
type Ledger struct {
	Name    string    `json:"name"`
	AddedAt time.Time `json:"addedAt"`
}

// LedgerInfo is the lifecycle metadata reported by GET /{ledger}/_info.
type LedgerInfo struct {
	Name    string      `json:"name"`
	Storage StorageInfo `json:"storage"`
}

// StorageInfo holds the storage section of the ledger metadata.
type StorageInfo struct {
	Migrations []Migration `json:"migrations"`
}

// Migration is one recorded storage upgrade step applied to a ledger.
type Migration struct {
	Version      int64      `json:"version"`
	Name         string     `json:"name"`
	State        string     `json:"state"`
	Date         time.Time  `json:"date"`
	TerminatedAt *time.Time `json:"terminatedAt,omitempty"`
}

// Duration returns how long the migration ran, or zero while it is still
// in progress.
func (m Migration) Duration() time.Duration {
	if m.TerminatedAt == nil {
		return 0
	}
	return m.TerminatedAt.Sub(m.Date)
}

// Volume is the cumulated input/output of one asset on one account.
type Volume struct {
	Input  decimal.Decimal `json:"input"`
	Output decimal.Decimal `json:"output"`
}

// Account is one account of one ledger. Balances are signed minor-unit
// quantities keyed by asset code.
//
// The Ledger field is a local annotation filled in by the client so that
// aggregated tables can tell records apart; it is not part of the wire
// payload.
type Account struct {
	Ledger   string                     `json:"-"`
	Address  string                     `json:"address"`
	Balances map[string]decimal.Decimal `json:"balances"`
	Volumes  map[string]Volume          `json:"volumes"`
	Metadata map[string]string          `json:"metadata"`
}

// Transaction is one committed transaction of one ledger. The Ledger
// field is the same local annotation as on Account.
type Transaction struct {
	Ledger    string            `json:"-"`
	ID        int64             `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Postings  []Posting         `json:"postings"`
	Metadata  map[string]string `json:"metadata"`
}

// Posting is one atomic asset movement between two account addresses.
// Amount is an integer quantity of the asset's minor unit.
type Posting struct {
	Source      string          `json:"source"`
	Destination string          `json:"destination"`
	Asset       string          `json:"asset"`
	Amount      decimal.Decimal `json:"amount"`
}

// ServerInfo is the merged view of the two server metadata endpoints.
type ServerInfo struct {
	Version       string
	StorageDriver string
}
