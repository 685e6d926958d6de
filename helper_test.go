package ledgerboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
)

// fakeLedger is one ledger served by the fake API.
type fakeLedger struct {
	name         string
	info         *LedgerInfo
	accounts     []Account
	transactions []Transaction

	moreAccounts     bool
	moreTransactions bool
	fail             bool // answer 500 on every ledger-scoped endpoint
}

// fakeAPI serves the subset of the ledger HTTP API the client consumes.
type fakeAPI struct {
	ledgers []*fakeLedger

	legacyInfoDown   bool
	extendedInfoDown bool

	// submissions records the POSTed transaction bodies.
	submissions []submission
	// rejectWith, when non-empty, rejects submissions with this errorMessage.
	rejectWith string
}

type submission struct {
	Ledger   string
	Postings []Posting         `json:"postings"`
	Metadata map[string]string `json:"metadata"`
}

func (api *fakeAPI) ledger(name string) *fakeLedger {
	for _, l := range api.ledgers {
		if l.name == name {
			return l
		}
	}
	return nil
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encoding fake response: %v", err)
	}
}

type page[T any] struct {
	Data    []T  `json:"data"`
	HasMore bool `json:"hasMore"`
}

func cursorOf[T any](data []T, hasMore bool) map[string]any {
	return map[string]any{"cursor": page[T]{Data: data, HasMore: hasMore}}
}

// newFakeAPI starts the fake server and returns a client pointed at it.
func newFakeAPI(t *testing.T, api *fakeAPI) *Client {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("GET /_/info", func(w http.ResponseWriter, r *http.Request) {
		if api.legacyInfoDown {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		writeJSON(t, w, map[string]string{"version": "v1.10.3"})
	})
	mux.HandleFunc("GET /_info", func(w http.ResponseWriter, r *http.Request) {
		if api.extendedInfoDown {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		writeJSON(t, w, map[string]any{"data": map[string]any{
			"version": "develop",
			"config":  map[string]any{"storage": map[string]any{"driver": "postgres"}},
		}})
	})
	mux.HandleFunc("GET /v2", func(w http.ResponseWriter, r *http.Request) {
		ledgers := make([]Ledger, 0, len(api.ledgers))
		for _, l := range api.ledgers {
			ledgers = append(ledgers, Ledger{Name: l.name})
		}
		writeJSON(t, w, cursorOf(ledgers, false))
	})
	mux.HandleFunc("GET /{ledger}/_info", func(w http.ResponseWriter, r *http.Request) {
		l := api.ledger(r.PathValue("ledger"))
		if l == nil || l.fail || l.info == nil {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		writeJSON(t, w, map[string]any{"data": l.info})
	})
	mux.HandleFunc("GET /{ledger}/accounts", func(w http.ResponseWriter, r *http.Request) {
		l := api.ledger(r.PathValue("ledger"))
		if l == nil || l.fail {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		writeJSON(t, w, cursorOf(l.accounts, l.moreAccounts))
	})
	mux.HandleFunc("GET /{ledger}/accounts/{address}", func(w http.ResponseWriter, r *http.Request) {
		l := api.ledger(r.PathValue("ledger"))
		if l == nil || l.fail {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		for _, a := range l.accounts {
			if a.Address == r.PathValue("address") {
				writeJSON(t, w, map[string]any{"data": a})
				return
			}
		}
		http.NotFound(w, r)
	})
	mux.HandleFunc("GET /{ledger}/transactions", func(w http.ResponseWriter, r *http.Request) {
		l := api.ledger(r.PathValue("ledger"))
		if l == nil || l.fail {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		source, destination := r.URL.Query().Get("source"), r.URL.Query().Get("destination")
		var txs []Transaction
		for _, tx := range l.transactions {
			if matchesFilter(tx, source, destination) {
				txs = append(txs, tx)
			}
		}
		writeJSON(t, w, cursorOf(txs, l.moreTransactions))
	})
	mux.HandleFunc("GET /{ledger}/transactions/{id}", func(w http.ResponseWriter, r *http.Request) {
		l := api.ledger(r.PathValue("ledger"))
		if l == nil || l.fail {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			http.Error(w, "bad id", http.StatusBadRequest)
			return
		}
		for _, tx := range l.transactions {
			if tx.ID == id {
				writeJSON(t, w, map[string]any{"data": tx})
				return
			}
		}
		http.NotFound(w, r)
	})
	mux.HandleFunc("POST /{ledger}/transactions", func(w http.ResponseWriter, r *http.Request) {
		if api.rejectWith != "" {
			w.WriteHeader(http.StatusBadRequest)
			writeJSON(t, w, map[string]string{"errorMessage": api.rejectWith})
			return
		}
		var sub submission
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		sub.Ledger = r.PathValue("ledger")
		api.submissions = append(api.submissions, sub)
		writeJSON(t, w, map[string]any{"data": map[string]any{"txid": len(api.submissions)}})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return NewClient(server.URL)
}

func matchesFilter(tx Transaction, source, destination string) bool {
	if source == "" && destination == "" {
		return true
	}
	for _, p := range tx.Postings {
		if (source == "" || p.Source == source) && (destination == "" || p.Destination == destination) {
			return true
		}
	}
	return false
}

func dec(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

// balances builds a balance map from asset/amount pairs.
func balances(kv ...string) map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = dec(kv[i+1])
	}
	return m
}
