package renderer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"

	"github.com/etnz/ledgerboard"
)

func dec(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

var sampleTime = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

func sampleTransaction() ledgerboard.Transaction {
	return ledgerboard.Transaction{
		Ledger:    "corp",
		ID:        42,
		Timestamp: sampleTime,
		Postings: []ledgerboard.Posting{
			{Source: "world", Destination: "bank", Asset: "USD/2", Amount: dec("100")},
			{Source: "bank", Destination: "fees", Asset: "USD/2", Amount: dec("2")},
		},
		Metadata: map[string]string{"created_via": "lbd"},
	}
}

func TestTxID(t *testing.T) {
	if got := TxID(42); got != "0000042" {
		t.Errorf("TxID(42) = %q, want %q", got, "0000042")
	}
	if got := TxID(12345678); got != "12345678" {
		t.Errorf("TxID(12345678) = %q, want %q", got, "12345678")
	}
}

func TestMetadataString(t *testing.T) {
	if got := metadataString(nil); got != "-" {
		t.Errorf("metadataString(nil) = %q, want %q", got, "-")
	}
	m := map[string]string{"b": "2", "a": "1"}
	if got := metadataString(m); got != "a=1, b=2" {
		t.Errorf("metadataString = %q, want %q", got, "a=1, b=2")
	}
}

func TestServerInfoMarkdown(t *testing.T) {
	out := ServerInfoMarkdown(&ledgerboard.ServerInfo{Version: "v1.10.3", StorageDriver: "postgres"}, sampleTime)
	for _, want := range []string{"Server Status", "v1.10.3", "postgres", "2024-05-10 09:30:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}

	out = ServerInfoMarkdown(&ledgerboard.ServerInfo{Version: "v1.10.3"}, sampleTime)
	if !strings.Contains(out, "N/A") {
		t.Errorf("missing storage driver should render as N/A:\n%s", out)
	}

	out = ServerInfoMarkdown(nil, sampleTime)
	if !strings.Contains(out, "unavailable") {
		t.Errorf("nil info should render an unavailable notice:\n%s", out)
	}
}

func TestLedgersMarkdown(t *testing.T) {
	out := LedgersMarkdown([]ledgerboard.Ledger{{Name: "corp"}, {Name: "personal"}})
	for _, want := range []string{"Ledgers Overview", "corp", "personal"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
	if out := LedgersMarkdown(nil); !strings.Contains(out, "No ledgers found") {
		t.Errorf("empty list should render a notice:\n%s", out)
	}
}

func TestLedgerSummaryMarkdown(t *testing.T) {
	done := sampleTime.Add(90 * time.Second)
	r := &ledgerboard.LedgerReport{
		Ledger:           "corp",
		AccountCount:     15,
		TransactionCount: 15,
		MoreTransactions: true,
		Migrations: []ledgerboard.Migration{
			{Version: 1, Name: "init", State: "DONE", Date: sampleTime, TerminatedAt: &done},
		},
	}
	out := LedgerSummaryMarkdown(r)
	for _, want := range []string{"Summary for corp", "Total Accounts", "15+", "init", "90.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
	// Only the truncated transaction count carries the lower-bound marker.
	if n := strings.Count(out, "15+"); n != 1 {
		t.Errorf("got %d lower-bound counts, want 1:\n%s", n, out)
	}
}

func TestAccountsMarkdown(t *testing.T) {
	accounts := []ledgerboard.Account{
		{Ledger: "corp", Address: "bank", Metadata: map[string]string{"tier": "1"}},
		{Ledger: "corp", Address: "world"},
	}
	diags := ledgerboard.Diagnostics{{Ledger: "legacy", Err: errors.New("connection refused")}}
	out := AccountsMarkdown(accounts, diags, true)
	for _, want := range []string{"bank", "world", "tier=1", "legacy", "connection refused", "first page"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
	if out := AccountsMarkdown(nil, nil, false); !strings.Contains(out, "No accounts found") {
		t.Errorf("empty list should render a notice:\n%s", out)
	}
}

func TestAccountDetailMarkdown(t *testing.T) {
	tx := sampleTransaction()
	r := &ledgerboard.AccountReport{
		Account: &ledgerboard.Account{
			Ledger:   "corp",
			Address:  "bank",
			Balances: map[string]decimal.Decimal{"USD/2": dec("98")},
			Volumes: map[string]ledgerboard.Volume{
				"USD/2": {Input: dec("100"), Output: dec("2")},
			},
		},
		Transactions: []ledgerboard.Transaction{tx},
		Activity: []ledgerboard.ActivityEntry{
			{Date: "May 10, 2024", Asset: "USD/2", Volume: dec("102")},
		},
	}
	out := AccountDetailMarkdown(r)
	for _, want := range []string{"All ledgers > corp > Accounts > bank", "May 10, 2024", "98", "0000042", "Metadata"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
	// Only postings involving the account appear, one row per posting.
	if n := strings.Count(out, "0000042"); n != 2 {
		t.Errorf("got %d posting rows for txid 0000042, want 2:\n%s", n, out)
	}
}

func TestAssetDetailMarkdown(t *testing.T) {
	d := ledgerboard.AssetDetail{
		TotalSupply: dec("60"),
		Holders: []ledgerboard.Holder{
			{Ledger: "corp", Account: "bank", Balance: dec("100")},
			{Ledger: "personal", Account: "wallet", Balance: dec("-40")},
		},
	}
	out := AssetDetailMarkdown("USD/2", d)
	for _, want := range []string{"Asset Details: USD/2", "Total Supply: 60", "bank", "wallet", "-40"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}

	out = AssetDetailMarkdown("GEM", ledgerboard.AssetDetail{TotalSupply: dec("0")})
	if !strings.Contains(out, "No accounts currently hold this asset.") {
		t.Errorf("holder-less asset should render a notice:\n%s", out)
	}
}

func TestTransactionsMarkdown(t *testing.T) {
	tx := sampleTransaction()
	out := TransactionsMarkdown([]ledgerboard.Transaction{tx}, nil, false)
	for _, want := range []string{"Transactions", "0000042", "USD/2 100", "USD/2 2", "corp"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}

func TestTransactionDetailMarkdown(t *testing.T) {
	tx := sampleTransaction()
	out := TransactionDetailMarkdown(&tx)
	for _, want := range []string{
		"Transaction 0000042",
		"world -> bank (USD/2 100)",
		"bank -> fees (USD/2 2)",
		"```dot",
		"created_via",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}

	empty := ledgerboard.Transaction{Ledger: "corp", ID: 7}
	if out := TransactionDetailMarkdown(&empty); !strings.Contains(out, "Empty graph.") {
		t.Errorf("posting-less transaction should render an empty-graph notice:\n%s", out)
	}
}

// TestMarkdownParses feeds every rendered view through goldmark to catch
// broken table or code-block syntax.
func TestMarkdownParses(t *testing.T) {
	tx := sampleTransaction()
	outputs := map[string]string{
		"server info":  ServerInfoMarkdown(&ledgerboard.ServerInfo{Version: "v1"}, sampleTime),
		"ledgers":      LedgersMarkdown([]ledgerboard.Ledger{{Name: "corp"}}),
		"transactions": TransactionsMarkdown([]ledgerboard.Transaction{tx}, nil, true),
		"tx detail":    TransactionDetailMarkdown(&tx),
	}
	for name, out := range outputs {
		t.Run(name, func(t *testing.T) {
			if strings.TrimSpace(out) == "" {
				t.Fatal("rendered markdown is empty")
			}
			parser := goldmark.New().Parser()
			node := parser.Parse(text.NewReader([]byte(out)))
			if node == nil || !node.HasChildren() {
				t.Errorf("goldmark produced no document nodes for:\n%s", out)
			}
		})
	}
}
