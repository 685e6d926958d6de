// Package renderer turns dashboard reports into markdown. It is a pure
// formatter: every function takes already-fetched data and returns a
// string, so it can be checked without a ledger.
package renderer

import (
	"fmt"
	"sort"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/etnz/ledgerboard"
)

// TxID renders a transaction id the way the tables show it, zero-padded to
// seven digits.
func TxID(id int64) string { return fmt.Sprintf("%07d", id) }

// timeLayout is the timestamp format used by all tables.
const timeLayout = "2006-01-02 15:04:05"

// metadataString flattens a metadata map into a stable "k=v" list.
func metadataString(m map[string]string) string {
	if len(m) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+m[k])
	}
	return strings.Join(pairs, ", ")
}

// metadataSection appends a Metadata section to doc.
func metadataSection(doc *md.Markdown, m map[string]string) {
	doc.H3("Metadata")
	if len(m) == 0 {
		doc.PlainText("No metadata.")
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft},
		Header:    []string{"Key", "Value"},
	}
	for _, k := range keys {
		table.Rows = append(table.Rows, []string{k, m[k]})
	}
	doc.Table(table)
}

// diagnosticsSection appends a warning section listing per-ledger fetch
// failures, so a partial table is never mistaken for a complete one.
func diagnosticsSection(doc *md.Markdown, diags ledgerboard.Diagnostics) {
	if len(diags) == 0 {
		return
	}
	doc.H3("Fetch Failures")
	items := make([]string, 0, len(diags))
	for _, d := range diags {
		items = append(items, d.String())
	}
	doc.BulletList(items...)
}

// truncatedNotice appends a note when only the first page of results was
// fetched.
func truncatedNotice(doc *md.Markdown, truncated bool) {
	if truncated {
		doc.PlainText("More results are available on the server; only the first page is shown.")
	}
}
