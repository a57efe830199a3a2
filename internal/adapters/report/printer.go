// Package report prints comparison results for humans and machines.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/fatih/color"
	pp "github.com/k0kubun/pp/v3"
	jsonDiff "github.com/keploy/jsonDiff"
	"gopkg.in/yaml.v3"

	"docdrift/internal/application/commands"
	"docdrift/internal/domain"
)

// Format selects the output encoding
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates an output format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected text, json or yaml)", s)
	}
}

// Options configures a Printer
type Options struct {
	Format Format
	// Details adds side-by-side document diffs to the text report
	Details bool
	Color   bool
	// ChecksumOnly prints only the names of mismatching collections
	ChecksumOnly bool
}

// Printer writes comparison reports
type Printer struct {
	w    io.Writer
	opts Options

	ok, warn, bad, bold func(a ...interface{}) string
}

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer, opts Options) *Printer {
	p := &Printer{w: w, opts: opts}
	p.ok = colorFunc(opts.Color, color.FgGreen)
	p.warn = colorFunc(opts.Color, color.FgYellow)
	p.bad = colorFunc(opts.Color, color.FgRed)
	p.bold = colorFunc(opts.Color, color.Bold)
	return p
}

func colorFunc(enabled bool, attr color.Attribute) func(a ...interface{}) string {
	c := color.New(attr)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()
}

// Print writes the result in the configured format
func (p *Printer) Print(res *commands.CompareResult) error {
	switch p.opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case FormatYAML:
		enc := yaml.NewEncoder(p.w)
		defer enc.Close()
		return enc.Encode(res)
	default:
		return p.text(res)
	}
}

func (p *Printer) text(res *commands.CompareResult) error {
	if p.opts.ChecksumOnly {
		return p.checksumOnly(res)
	}

	if res.Equal() {
		_, err := fmt.Fprintln(p.w, p.ok("Collections are equal"))
		return err
	}

	if err := p.summary(res); err != nil {
		return err
	}
	for _, d := range res.Diffs {
		if err := p.collection(d); err != nil {
			return err
		}
	}
	return nil
}

// checksumOnly lists the collections to create and delete, then the names
// of the collections whose checksums differ
func (p *Printer) checksumOnly(res *commands.CompareResult) error {
	sections := []struct {
		title string
		names []string
		paint func(a ...interface{}) string
	}{
		{"Collections to create", names(res.Delta.ToCreate), p.ok},
		{"Collections to delete", names(res.Delta.ToDelete), p.bad},
	}
	for _, s := range sections {
		if len(s.names) == 0 {
			continue
		}
		if _, err := fmt.Fprintln(p.w, p.bold(s.title)); err != nil {
			return err
		}
		for _, name := range s.names {
			if _, err := fmt.Fprintln(p.w, "  "+s.paint(name)); err != nil {
				return err
			}
		}
	}

	if len(res.Delta.ContentMismatches) == 0 {
		_, err := fmt.Fprintln(p.w, p.ok("No content mismatches"))
		return err
	}
	for _, name := range res.Delta.MismatchNames() {
		if _, err := fmt.Fprintln(p.w, p.warn(name)); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) summary(res *commands.CompareResult) error {
	records := make(map[string]int, len(res.Diffs))
	for _, d := range res.Diffs {
		records[d.Collection.Name] = len(d.Records)
	}

	var rows [][]string
	row := func(c domain.Collection, status string, withRecords bool) {
		count := "-"
		if withRecords {
			count = strconv.Itoa(records[c.Name])
		}
		rows = append(rows, []string{c.Name, c.Type.String(), status, count})
	}
	for _, c := range res.Delta.ToCreate {
		row(c, p.ok("create"), true)
	}
	for _, c := range res.Delta.ToDelete {
		row(c, p.bad("delete"), false)
	}
	for _, c := range res.Delta.ContentMismatches {
		row(c, p.warn("mismatch"), true)
	}
	return WriteTable(p.w, []string{"Collection", "Type", "Status", "Records"}, rows)
}

func (p *Printer) collection(d domain.CollectionDiff) error {
	if _, err := fmt.Fprintf(p.w, "\n%s\n", p.bold(d.Collection.Name)); err != nil {
		return err
	}
	if len(d.Records) == 0 {
		_, err := fmt.Fprintln(p.w, "  checksums differ but no structural differences were found")
		return err
	}

	for _, r := range d.Records {
		if _, err := fmt.Fprintln(p.w, "  "+p.record(r)); err != nil {
			return err
		}
	}

	if p.opts.Details {
		return p.details(d.Records)
	}
	return nil
}

func (p *Printer) record(r domain.Record) string {
	switch r.Kind {
	case domain.RecordAdded:
		return fmt.Sprintf("%s %s %s", p.ok("+"), r.Path, compact(r.New))
	case domain.RecordRemoved:
		return fmt.Sprintf("%s %s %s", p.bad("-"), r.Path, compact(r.Old))
	case domain.RecordTypeChanged:
		return fmt.Sprintf("%s %s %s -> %s", p.warn("!"), r.Path, compact(r.Old), compact(r.New))
	default:
		return fmt.Sprintf("%s %s %s -> %s", p.warn("~"), r.Path, compact(r.Old), compact(r.New))
	}
}

// details prints one side-by-side diff per changed document and a dump of
// every added or removed document
func (p *Printer) details(records []domain.Record) error {
	changed := make(map[string]domain.Record)
	printer := pp.New()
	printer.WithLineInfo = false
	printer.SetColoringEnabled(p.opts.Color)

	for _, r := range records {
		if r.Path.IsDocument() {
			v := r.New
			if r.Kind == domain.RecordRemoved {
				v = r.Old
			}
			if _, err := fmt.Fprintf(p.w, "\n%s %s\n%s\n", r.Kind, r.Path, printer.Sprint(v)); err != nil {
				return err
			}
			continue
		}
		if _, seen := changed[r.Path.DocumentID()]; !seen && r.Source != nil && r.Target != nil {
			changed[r.Path.DocumentID()] = r
		}
	}

	ids := make([]string, 0, len(changed))
	for id := range changed {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		r := changed[id]
		table, err := sideBySide(r.Source, r.Target, !p.opts.Color)
		if err != nil {
			return fmt.Errorf("failed to diff document %s: %w", id, err)
		}
		if _, err := fmt.Fprintf(p.w, "\n%s\n%s", p.bold(id), table); err != nil {
			return err
		}
	}
	return nil
}

func sideBySide(compared, reference map[string]any, disableColor bool) (string, error) {
	a, err := json.Marshal(compared)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(reference)
	if err != nil {
		return "", err
	}
	diff, err := jsonDiff.CompareJSON(a, b, nil, disableColor)
	if err != nil {
		return "", err
	}

	buf := &bytes.Buffer{}
	rows := [][]string{{diff.Expected, diff.Actual}}
	if err := WriteTable(buf, []string{"Compared", "Reference"}, rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func names(cols []domain.Collection) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Name
	}
	return out
}

func compact(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
