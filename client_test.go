package ledgerboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestListLedgers(t *testing.T) {
	client := newFakeAPI(t, &fakeAPI{ledgers: []*fakeLedger{
		{name: "main"}, {name: "treasury"},
	}})

	ledgers, err := client.ListLedgers(context.Background())
	if err != nil {
		t.Fatalf("ListLedgers: %v", err)
	}
	if len(ledgers) != 2 || ledgers[0].Name != "main" || ledgers[1].Name != "treasury" {
		t.Errorf("ListLedgers = %v, want [main treasury] in server order", ledgers)
	}
}

func TestServerInfo(t *testing.T) {
	testCases := []struct {
		name        string
		api         *fakeAPI
		wantNil     bool
		wantVersion string
		wantDriver  string
	}{
		{"both endpoints up, legacy version wins", &fakeAPI{}, false, "v1.10.3", "postgres"},
		{"legacy down", &fakeAPI{legacyInfoDown: true}, false, "develop", "postgres"},
		{"extended down", &fakeAPI{extendedInfoDown: true}, false, "v1.10.3", ""},
		{"both down", &fakeAPI{legacyInfoDown: true, extendedInfoDown: true}, true, "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := newFakeAPI(t, tc.api)
			info := client.ServerInfo(context.Background())
			if tc.wantNil {
				if info != nil {
					t.Fatalf("ServerInfo = %+v, want nil", info)
				}
				return
			}
			if info == nil {
				t.Fatal("ServerInfo = nil, want a partial answer")
			}
			if info.Version != tc.wantVersion {
				t.Errorf("Version = %q, want %q", info.Version, tc.wantVersion)
			}
			if info.StorageDriver != tc.wantDriver {
				t.Errorf("StorageDriver = %q, want %q", info.StorageDriver, tc.wantDriver)
			}
		})
	}
}

func TestAccountsTagging(t *testing.T) {
	client := newFakeAPI(t, &fakeAPI{ledgers: []*fakeLedger{{
		name: "main",
		accounts: []Account{
			{Address: "world"},
			{Address: "orders:1234", Balances: balances("USD/2", "100")},
		},
		moreAccounts: true,
	}}})

	accounts, hasMore, err := client.Accounts(context.Background(), "main")
	if err != nil {
		t.Fatalf("Accounts: %v", err)
	}
	if !hasMore {
		t.Error("hasMore = false, want true")
	}
	for _, a := range accounts {
		if a.Ledger != "main" {
			t.Errorf("account %s tagged with ledger %q, want %q", a.Address, a.Ledger, "main")
		}
	}
	if !accounts[1].Balances["USD/2"].Equal(dec("100")) {
		t.Errorf("balance = %s, want 100", accounts[1].Balances["USD/2"])
	}
}

func TestTransactionsFilterParams(t *testing.T) {
	// The filter params must reach the API only when non-blank after
	// trimming.
	testCases := []struct {
		name       string
		filter     TransactionFilter
		wantSource bool
		wantDest   bool
	}{
		{"no filters", TransactionFilter{}, false, false},
		{"blank filters", TransactionFilter{Source: "   ", Destination: "\t"}, false, false},
		{"source only", TransactionFilter{Source: "world"}, true, false},
		{"both", TransactionFilter{Source: "world", Destination: "orders:1"}, true, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got url.Values
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.URL.Query()
				w.Write([]byte(`{"cursor":{"data":[]}}`))
			}))
			defer server.Close()

			client := NewClient(server.URL)
			if _, _, err := client.Transactions(context.Background(), "main", tc.filter); err != nil {
				t.Fatalf("Transactions: %v", err)
			}
			if got.Has("source") != tc.wantSource {
				t.Errorf("source param present = %v, want %v", got.Has("source"), tc.wantSource)
			}
			if got.Has("destination") != tc.wantDest {
				t.Errorf("destination param present = %v, want %v", got.Has("destination"), tc.wantDest)
			}
		})
	}
}

func TestTransactionNotFound(t *testing.T) {
	client := newFakeAPI(t, &fakeAPI{ledgers: []*fakeLedger{{name: "main"}}})

	_, err := client.Transaction(context.Background(), "main", 42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Transaction(42) error = %v, want ErrNotFound", err)
	}
	_, err = client.Account(context.Background(), "main", "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Account(ghost) error = %v, want ErrNotFound", err)
	}
}

func TestTransactionLookup(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	client := newFakeAPI(t, &fakeAPI{ledgers: []*fakeLedger{{
		name: "main",
		transactions: []Transaction{{
			ID:        7,
			Timestamp: ts,
			Postings:  []Posting{{Source: "world", Destination: "users:1", Asset: "USD/2", Amount: dec("150")}},
		}},
	}}})

	tx, err := client.Transaction(context.Background(), "main", 7)
	if err != nil {
		t.Fatalf("Transaction: %v", err)
	}
	if tx.Ledger != "main" {
		t.Errorf("tx tagged with ledger %q, want main", tx.Ledger)
	}
	if !tx.Timestamp.Equal(ts) || len(tx.Postings) != 1 {
		t.Errorf("unexpected transaction: %+v", tx)
	}
}

func TestCreateTransaction(t *testing.T) {
	api := &fakeAPI{ledgers: []*fakeLedger{{name: "main"}}}
	client := newFakeAPI(t, api)

	postings := []Posting{{Source: "world", Destination: "users:1", Asset: "USD/2", Amount: dec("150")}}
	err := client.CreateTransaction(context.Background(), "main", postings, map[string]string{"created_via": "lbd"})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if len(api.submissions) != 1 {
		t.Fatalf("got %d submissions, want 1", len(api.submissions))
	}
	sub := api.submissions[0]
	if sub.Ledger != "main" || len(sub.Postings) != 1 || sub.Metadata["created_via"] != "lbd" {
		t.Errorf("unexpected submission: %+v", sub)
	}
	if !sub.Postings[0].Amount.Equal(dec("150")) {
		t.Errorf("posted amount = %s, want 150", sub.Postings[0].Amount)
	}
}

func TestCreateTransactionRejected(t *testing.T) {
	api := &fakeAPI{
		ledgers:    []*fakeLedger{{name: "main"}},
		rejectWith: "no postings",
	}
	client := newFakeAPI(t, api)

	err := client.CreateTransaction(context.Background(), "main", nil, nil)
	if err == nil {
		t.Fatal("CreateTransaction succeeded, want the remote errorMessage")
	}
	if err.Error() != "no postings" {
		t.Errorf("error = %q, want the verbatim remote message %q", err, "no postings")
	}
}
