package renderer

import (
	"bytes"
	"time"

	md "github.com/nao1215/markdown"

	"github.com/etnz/ledgerboard"
)

// ServerInfoMarkdown renders the server status block. A nil info means
// both metadata endpoints were unavailable.
func ServerInfoMarkdown(info *ledgerboard.ServerInfo, now time.Time) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Server Status")
	doc.PlainText("Current time: " + now.Format(timeLayout))
	if info == nil {
		doc.PlainText("Server information is unavailable.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft},
		Header:    []string{"Field", "Value"},
	}
	table.Rows = append(table.Rows, []string{"Version", orNA(info.Version)})
	table.Rows = append(table.Rows, []string{"Storage Driver", orNA(info.StorageDriver)})
	doc.Table(table)
	return doc.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
