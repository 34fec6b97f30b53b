package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/teranos/contractq/errors"
	"github.com/teranos/contractq/internal/util"
	"github.com/teranos/contractq/nlq/types"
	"github.com/teranos/contractq/sym"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// writeValue encodes v as JSON or YAML
func writeValue(w io.Writer, v interface{}, format string) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return errors.Wrap(err, "marshal JSON")
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return errors.Wrap(err, "marshal YAML")
		}
		_, err = w.Write(data)
		return err
	default:
		return unsupportedFormat(format, formatJSON, formatYAML)
	}
}

func unsupportedFormat(format string, supported ...string) error {
	return errors.WithHintf(
		errors.Newf("unsupported format: %s", format),
		"supported: %s", strings.Join(supported, ", "),
	)
}

// writeResults renders results in format. Table output separates results
// with a blank line.
func writeResults(w io.Writer, results []types.Result, format string) error {
	if format != formatTable {
		if len(results) == 1 {
			return writeValue(w, results[0], format)
		}
		return writeValue(w, results, format)
	}
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := writeResultTable(w, r); err != nil {
			return err
		}
	}
	return nil
}

func writeResultTable(w io.Writer, r types.Result) error {
	domain := string(r.Domain())
	rows := pterm.TableData{
		{"Field", "Value"},
		{"query", r.Header.InputTracking.OriginalInput},
	}
	if c := r.Header.InputTracking.CorrectedInput; c != nil {
		rows = append(rows, []string{"corrected", fmt.Sprintf("%s (%.2f)", *c, r.Header.InputTracking.CorrectionConfidence)})
	}
	rows = append(rows,
		[]string{"domain", sym.Label(domain)},
		[]string{"intent", string(r.Intent())},
		[]string{"action", r.Action()},
		[]string{"confidence", fmt.Sprintf("%.2f", r.Confidence)},
	)
	for _, id := range []struct {
		name  string
		value *string
	}{
		{"contractNumber", r.Header.ContractNumber},
		{"partNumber", r.Header.PartNumber},
		{"customerNumber", r.Header.CustomerNumber},
		{"customerName", r.Header.CustomerName},
		{"createdBy", r.Header.CreatedBy},
	} {
		if id.value != nil {
			rows = append(rows, []string{id.name, *id.value})
		}
	}
	if r.QueryMetadata.CacheHit {
		rows = append(rows, []string{"cache", sym.Cache + " hit"})
	}
	if len(r.DisplayEntities) > 0 {
		rows = append(rows, []string{"display", strings.Join(r.DisplayEntities, ", ")})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		return errors.Wrap(err, "render result table")
	}
	fmt.Fprintln(w, out)

	if len(r.Entities) > 0 {
		filters := pterm.TableData{{"Attribute", "Op", "Value", "Source"}}
		for _, f := range r.Entities {
			filters = append(filters, []string{f.Attribute, f.Operation, f.Value, string(f.Source)})
		}
		out, err := pterm.DefaultTable.WithHasHeader().WithData(filters).Srender()
		if err != nil {
			return errors.Wrap(err, "render filter table")
		}
		fmt.Fprintln(w, out)
	}

	for _, cl := range r.QueryMetadata.Clauses {
		fmt.Fprintf(w, "  %s %-12s %-28s %.2f  %s\n",
			sym.Glyph(string(cl.QueryType)), cl.QueryType, cl.ActionType, cl.Confidence, cl.Text)
	}
	for _, e := range r.Errors {
		fmt.Fprintf(w, "%s %s: %s\n", sym.Glyph(string(e.Severity)), e.Code, e.Message)
	}
	return nil
}

// resultLine is the one-line form used by batch table output
func resultLine(r types.Result) string {
	id := util.Deref(r.Header.ContractNumber)
	if id == "" {
		id = util.Deref(r.Header.CustomerNumber)
	}
	if id == "" {
		id = util.Deref(r.Header.PartNumber)
	}
	return fmt.Sprintf("%s %-30s %-10s %.2f", sym.Glyph(string(r.Domain())), r.Action(), id, r.Confidence)
}
