package render

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/sadopc/termdba/internal/adapter"
)

// WriteCSV writes a query result to w as CSV, header row first.
func WriteCSV(w io.Writer, res *adapter.QueryResult) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(res.Columns))
	for i, c := range res.Columns {
		header[i] = c.Name
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range res.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes a query result to w as a JSON array of objects mapping
// column names to string values.
func WriteJSON(w io.Writer, res *adapter.QueryResult) error {
	names := make([]string, len(res.Columns))
	for i, c := range res.Columns {
		names[i] = c.Name
	}

	objects := make([]map[string]string, 0, len(res.Rows))
	for _, row := range res.Rows {
		obj := make(map[string]string, len(names))
		for i, name := range names {
			if i < len(row) {
				obj[name] = row[i]
			} else {
				obj[name] = ""
			}
		}
		objects = append(objects, obj)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(objects)
}
