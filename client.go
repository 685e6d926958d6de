package ledgerboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// DefaultBaseURL is where the ledger API listens unless overridden.
const DefaultBaseURL = "http://ledger:3068"

// ErrNotFound reports that a single-entity lookup matched nothing.
var ErrNotFound = errors.New("not found")

// Client talks to the ledger HTTP API. All reads normalize the cursor
// envelope and tag records with their origin ledger; a failed call degrades
// to an empty or absent result, never a crash.
type Client struct {
	baseURL string
	http    *http.Client
	logf    func(format string, args ...any)
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every remote call issued by the client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogf redirects the client's diagnostics. The default is log.Printf.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(c *Client) { c.logf = logf }
}

// NewClient returns a client for the ledger API at baseURL, or at
// DefaultBaseURL when baseURL is empty.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		logf:    log.Printf,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// cursor is the API's pagination envelope.
type cursor[T any] struct {
	Data    []T  `json:"data"`
	HasMore bool `json:"hasMore"`
}

// getJSON performs a GET and unmarshals the JSON response into data.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, data any) error {
	addr := c.baseURL + path
	if len(query) > 0 {
		addr += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("GET %s: %w", path, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v: %v", path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}

// ServerInfo merges the legacy /_/info version field with the extended
// /_info payload. It returns nil when both endpoints are unavailable;
// each failure is logged, not returned, so a half-broken server still
// yields a partial answer.
func (c *Client) ServerInfo(ctx context.Context) *ServerInfo {
	var info ServerInfo
	available := false

	var payload any
	if err := c.getJSON(ctx, "/_info", nil, &payload); err != nil {
		c.logf("ledger: fetching /_info: %v", err)
	} else {
		available = true
		if v, err := jsonpath.Get("$.data.version", payload); err == nil {
			if s, ok := v.(string); ok {
				info.Version = s
			}
		}
		if v, err := jsonpath.Get("$.data.config.storage.driver", payload); err == nil {
			if s, ok := v.(string); ok {
				info.StorageDriver = s
			}
		}
	}

	var legacy struct {
		Version string `json:"version"`
	}
	if err := c.getJSON(ctx, "/_/info", nil, &legacy); err != nil {
		c.logf("ledger: fetching /_/info: %v", err)
	} else {
		available = true
		if legacy.Version != "" {
			info.Version = legacy.Version
		}
	}

	if !available {
		return nil
	}
	return &info
}

// ListLedgers returns all ledgers known to the server, in server order.
func (c *Client) ListLedgers(ctx context.Context) ([]Ledger, error) {
	var page struct {
		Cursor cursor[Ledger] `json:"cursor"`
	}
	if err := c.getJSON(ctx, "/v2", nil, &page); err != nil {
		return nil, fmt.Errorf("listing ledgers: %w", err)
	}
	return page.Cursor.Data, nil
}

// LedgerInfo returns the lifecycle metadata of one ledger, or nil with an
// error when it is unavailable.
func (c *Client) LedgerInfo(ctx context.Context, ledger string) (*LedgerInfo, error) {
	var payload struct {
		Data LedgerInfo `json:"data"`
	}
	if err := c.getJSON(ctx, "/"+ledger+"/_info", nil, &payload); err != nil {
		return nil, fmt.Errorf("ledger %s: fetching info: %w", ledger, err)
	}
	return &payload.Data, nil
}

// Accounts returns the first page of one ledger's accounts, each tagged
// with its origin ledger. hasMore reports a truncated page.
func (c *Client) Accounts(ctx context.Context, ledger string) (accounts []Account, hasMore bool, err error) {
	var page struct {
		Cursor cursor[Account] `json:"cursor"`
	}
	if err := c.getJSON(ctx, "/"+ledger+"/accounts", nil, &page); err != nil {
		return nil, false, fmt.Errorf("ledger %s: fetching accounts: %w", ledger, err)
	}
	for i := range page.Cursor.Data {
		page.Cursor.Data[i].Ledger = ledger
	}
	return page.Cursor.Data, page.Cursor.HasMore, nil
}

// TransactionFilter narrows a transaction listing by posting endpoints.
// Blank values (after trimming) are not forwarded to the API.
type TransactionFilter struct {
	Source      string
	Destination string
}

func (f TransactionFilter) values() url.Values {
	q := url.Values{}
	if s := strings.TrimSpace(f.Source); s != "" {
		q.Set("source", s)
	}
	if d := strings.TrimSpace(f.Destination); d != "" {
		q.Set("destination", d)
	}
	return q
}

// Transactions returns the first page of one ledger's transactions matching
// the filter, each tagged with its origin ledger.
func (c *Client) Transactions(ctx context.Context, ledger string, filter TransactionFilter) (txs []Transaction, hasMore bool, err error) {
	var page struct {
		Cursor cursor[Transaction] `json:"cursor"`
	}
	if err := c.getJSON(ctx, "/"+ledger+"/transactions", filter.values(), &page); err != nil {
		return nil, false, fmt.Errorf("ledger %s: fetching transactions: %w", ledger, err)
	}
	for i := range page.Cursor.Data {
		page.Cursor.Data[i].Ledger = ledger
	}
	return page.Cursor.Data, page.Cursor.HasMore, nil
}

// Transaction returns one transaction by id. The error wraps ErrNotFound
// when the ledger has no such transaction.
func (c *Client) Transaction(ctx context.Context, ledger string, id int64) (*Transaction, error) {
	var payload struct {
		Data Transaction `json:"data"`
	}
	if err := c.getJSON(ctx, "/"+ledger+"/transactions/"+strconv.FormatInt(id, 10), nil, &payload); err != nil {
		return nil, fmt.Errorf("ledger %s: fetching transaction %d: %w", ledger, id, err)
	}
	payload.Data.Ledger = ledger
	return &payload.Data, nil
}

// Account returns one account by address. The error wraps ErrNotFound when
// the ledger has no such account.
func (c *Client) Account(ctx context.Context, ledger, address string) (*Account, error) {
	var payload struct {
		Data Account `json:"data"`
	}
	if err := c.getJSON(ctx, "/"+ledger+"/accounts/"+url.PathEscape(address), nil, &payload); err != nil {
		return nil, fmt.Errorf("ledger %s: fetching account %s: %w", ledger, address, err)
	}
	payload.Data.Ledger = ledger
	return &payload.Data, nil
}

// CreateTransaction submits one transaction. Posting amounts must already
// be scaled to the asset's minor unit (see Asset.MinorUnits). On rejection
// the remote errorMessage is surfaced verbatim; no retry is attempted.
func (c *Client) CreateTransaction(ctx context.Context, ledger string, postings []Posting, metadata map[string]string) error {
	if metadata == nil {
		metadata = map[string]string{}
	}
	// Amounts go on the wire as JSON numbers, not the quoted strings
	// decimal.Decimal marshals to.
	type wirePosting struct {
		Source      string      `json:"source"`
		Destination string      `json:"destination"`
		Asset       string      `json:"asset"`
		Amount      json.Number `json:"amount"`
	}
	wire := make([]wirePosting, 0, len(postings))
	for _, p := range postings {
		wire = append(wire, wirePosting{p.Source, p.Destination, p.Asset, json.Number(p.Amount.String())})
	}
	body, err := json.Marshal(struct {
		Postings []wirePosting     `json:"postings"`
		Metadata map[string]string `json:"metadata"`
	}{wire, metadata})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+ledger+"/transactions", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ledger %s: submitting transaction: %w", ledger, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	var remote struct {
		ErrorMessage string `json:"errorMessage"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&remote); err == nil && remote.ErrorMessage != "" {
		return errors.New(remote.ErrorMessage)
	}
	return fmt.Errorf("ledger %s: submitting transaction: %v", ledger, resp.Status)
}
