package ledgerboard

import (
	"context"
	"fmt"
)

// View is one of the dashboard's top-level views.
type View int

const (
	ViewLedgers View = iota
	ViewAccounts
	ViewTransactions
	ViewAssets
)

var viewNames = map[View]string{
	ViewLedgers:      "ledgers",
	ViewAccounts:     "accounts",
	ViewTransactions: "transactions",
	ViewAssets:       "assets",
}

func (v View) String() string { return viewNames[v] }

// ParseView parses a view name as typed in the browse prompt.
func ParseView(s string) (View, error) {
	for v, name := range viewNames {
		if name == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown view %q (want ledgers, accounts, transactions or assets)", s)
}

// Session is the navigation state of one dashboard session. It is the sole
// owner of the selection and filter state: every change goes through a
// transition method, no other component writes to it.
//
// A detail flag is only ever true while its identifier is set. Switching
// views clears the detail flags but keeps the remembered selections, so
// re-entering a view lands on its list until an explicit new selection.
type Session struct {
	view View

	selectedLedger        string
	selectedAccount       string
	selectedTransactionID string

	accountDetail     bool
	transactionDetail bool

	sourceFilter      string
	destinationFilter string

	assets *AssetIndex
}

// NewSession returns a session at its initial state: ledgers view, no
// selections, list sub-state everywhere, empty filters.
func NewSession() *Session {
	return &Session{view: ViewLedgers}
}

// SwitchView moves to another top-level view. Both detail flags reset to
// the list sub-state; selections are retained.
func (s *Session) SwitchView(v View) {
	s.view = v
	s.accountDetail = false
	s.transactionDetail = false
}

// SelectAccount records a row selection in the accounts list and opens the
// account detail.
func (s *Session) SelectAccount(ledger, address string) error {
	if address == "" {
		return fmt.Errorf("empty account address")
	}
	if ledger != "" {
		s.selectedLedger = ledger
	}
	s.selectedAccount = address
	s.accountDetail = true
	return nil
}

// SelectTransaction records a row selection in the transactions list and
// opens the transaction detail.
func (s *Session) SelectTransaction(ledger, id string) error {
	if id == "" {
		return fmt.Errorf("empty transaction id")
	}
	if ledger != "" {
		s.selectedLedger = ledger
	}
	s.selectedTransactionID = id
	s.transactionDetail = true
	return nil
}

// Back leaves the current view's detail and returns to its list. The
// selected identifier is retained.
func (s *Session) Back() {
	switch s.view {
	case ViewAccounts:
		s.accountDetail = false
	case ViewTransactions:
		s.transactionDetail = false
	}
}

// SetLedgerFilter changes the ledger the current view is scoped to. An
// empty name means all ledgers. In the accounts view this invalidates the
// account picked under the previous ledger.
func (s *Session) SetLedgerFilter(ledger string) {
	s.selectedLedger = ledger
	if s.view == ViewAccounts {
		s.selectedAccount = ""
		s.accountDetail = false
	}
}

// ApplyTransactionFilters commits the pending filter text. Detail state is
// untouched.
func (s *Session) ApplyTransactionFilters(source, destination, ledger string) {
	s.sourceFilter = source
	s.destinationFilter = destination
	if ledger != "" {
		s.selectedLedger = ledger
	}
}

func (s *Session) View() View                  { return s.view }
func (s *Session) SelectedLedger() string      { return s.selectedLedger }
func (s *Session) SelectedAccount() string     { return s.selectedAccount }
func (s *Session) SelectedTransaction() string { return s.selectedTransactionID }
func (s *Session) SourceFilter() string        { return s.sourceFilter }
func (s *Session) DestinationFilter() string   { return s.destinationFilter }

// Filter returns the committed transaction filters in client form.
func (s *Session) Filter() TransactionFilter {
	return TransactionFilter{Source: s.sourceFilter, Destination: s.destinationFilter}
}

// ShowingAccountDetail reports whether the accounts view is in its detail
// sub-state.
func (s *Session) ShowingAccountDetail() bool {
	return s.accountDetail && s.selectedAccount != ""
}

// ShowingTransactionDetail reports whether the transactions view is in its
// detail sub-state.
func (s *Session) ShowingTransactionDetail() bool {
	return s.transactionDetail && s.selectedTransactionID != ""
}

// AssetIndex returns the session's asset index, building it on first use.
// The full scan is expensive, so the index is memoized until Refresh.
func (s *Session) AssetIndex(ctx context.Context, c *Client) (*AssetIndex, error) {
	if s.assets == nil {
		idx, err := BuildAssetIndex(ctx, c)
		if err != nil {
			return nil, err
		}
		s.assets = idx
	}
	return s.assets, nil
}

// Refresh drops the memoized asset index. The next assets view rebuilds it
// from the ledger. Invalidation is manual only.
func (s *Session) Refresh() {
	s.assets = nil
}
