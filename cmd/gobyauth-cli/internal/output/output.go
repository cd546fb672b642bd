// Package output renders CLI listings as an aligned table or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Table is a header plus rows of cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// Write renders t in the given format ("table" or "json"). In JSON each
// row becomes an object keyed by the lower-cased header.
func Write(w io.Writer, format string, t Table) error {
	switch format {
	case "table":
		writeTable(w, t)
		return nil
	case "json":
		return writeJSON(w, t)
	default:
		return fmt.Errorf("unsupported output format '%s', use 'table' or 'json'", format)
	}
}

func writeTable(w io.Writer, t Table) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, strings.Join(t.Header, "\t"))
	dashes := make([]string, len(t.Header))
	for i, h := range t.Header {
		dashes[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(dashes, "\t"))

	if len(t.Rows) == 0 {
		fmt.Fprintln(tw, "No entries found")
		return
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
}

func writeJSON(w io.Writer, t Table) error {
	items := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		item := make(map[string]string, len(t.Header))
		for i, h := range t.Header {
			if i < len(row) {
				item[strings.ToLower(h)] = row[i]
			}
		}
		items = append(items, item)
	}

	out := struct {
		Items []map[string]string `json:"items"`
		Count int                 `json:"count"`
	}{Items: items, Count: len(items)}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
