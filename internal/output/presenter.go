// Package output renders GraphQL payloads for the terminal: edge/node
// connections become titled tables, everything else is pretty-printed JSON.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rodaine/table"

	"github.com/dmagro/luxor-cli/internal/graphql"
)

// Format selects how payloads are shown.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected table or json)", s)
	}
}

// Presenter writes rendered results to a single writer.
type Presenter struct {
	w      io.Writer
	format Format
}

func NewPresenter(w io.Writer, format Format) *Presenter {
	return &Presenter{w: w, format: format}
}

// Render shows the data.<field> result of payload.
//
// In table format a connection becomes a table. A result that is not a
// connection, or whose nodes do not share the same fields, is printed as
// JSON, and so is the whole payload when the field is absent. Any other
// failure prints the payload as JSON and is returned.
func (p *Presenter) Render(field string, payload json.RawMessage) error {
	if p.format == FormatJSON {
		return p.RenderJSON(payload)
	}

	tbl, result, err := Tabulate(field, payload)
	switch {
	case err == nil:
		p.RenderTable(tbl)
		return nil
	case errors.Is(err, ErrNotConnection), errors.Is(err, ErrRaggedRows):
		return p.RenderJSON(result)
	case errors.Is(err, ErrMissingField):
		return p.RenderJSON(payload)
	default:
		if jerr := p.RenderJSON(payload); jerr != nil {
			return fmt.Errorf("render %s: %w", field, jerr)
		}
		return fmt.Errorf("render %s: %w", field, err)
	}
}

// RenderTable prints tbl under a "Result: <title>" heading.
func (p *Presenter) RenderTable(tbl *Table) {
	fmt.Fprintln(p.w, titleText("Result: "+tbl.Title))

	headers := make([]interface{}, len(tbl.Columns))
	for i, c := range tbl.Columns {
		headers[i] = c
	}
	t := table.New(headers...).WithWriter(p.w)
	t.WithHeaderFormatter(headerFmt)

	for _, row := range tbl.Rows {
		cells := make([]interface{}, len(row))
		for i, v := range row {
			cells[i] = cellText(v)
		}
		t.AddRow(cells...)
	}

	t.Print()
	fmt.Fprintln(p.w)
}

// RenderJSON pretty-prints raw JSON.
func (p *Presenter) RenderJSON(raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("format JSON: %w", err)
	}
	buf.WriteByte('\n')
	_, err := p.w.Write(buf.Bytes())
	return err
}

// RenderValue pretty-prints any JSON-encodable value.
func (p *Presenter) RenderValue(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// RenderErrors lists GraphQL errors from a 200 response.
func (p *Presenter) RenderErrors(errs []graphql.Error) {
	for _, e := range errs {
		fmt.Fprintf(p.w, "%s %s\n", red("GraphQL error:"), e.String())
	}
}

func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return dim("null")
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return fmt.Sprintf("%t", x)
	default:
		data, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprintf("%v", x)
		}
		return string(data)
	}
}
