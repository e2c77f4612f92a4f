package presenter

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/WangYihang/Domain-Reputation-Checker/pkg/domain/entity"
)

const (
	// TimestampLayout is the layout of the report header timestamp
	TimestampLayout = "2006-01-02 15:04:05"

	FormatText = "text"
	FormatJSON = "json"
)

// Render renders run in the named format
func Render(run *entity.RunReport, format string) ([]byte, error) {
	switch format {
	case "", FormatText:
		return []byte(RenderText(run)), nil
	case FormatJSON:
		return RenderJSON(run)
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// RenderText renders the line-oriented report. Output is deterministic
// for a given run: domains in input order, fields in declared order.
func RenderText(run *entity.RunReport) string {
	lines := []string{"Report Generated on " + run.GeneratedAt.Format(TimestampLayout)}

	for _, d := range run.Domains {
		lines = append(lines, "", "Website: "+d.Domain)
		if d.IsPreset() {
			lines = append(lines, "  Preset List Status: "+d.PresetStatus)
			continue
		}
		for _, p := range d.Providers {
			lines = append(lines, "  "+p.Provider+" Reputation:")
			if p.Failed() {
				lines = append(lines, "    error: "+p.Error)
				continue
			}
			for _, f := range p.Fields {
				lines = append(lines, "    "+f.Key+": "+FormatValue(f.Value))
			}
		}
	}

	return strings.Join(lines, "\n") + "\n"
}

// RenderJSON renders the report as indented JSON
func RenderJSON(run *entity.RunReport) ([]byte, error) {
	out := struct {
		GeneratedAt string                `json:"generated_at"`
		Domains     []entity.DomainReport `json:"domains"`
	}{
		GeneratedAt: run.GeneratedAt.Format(TimestampLayout),
		Domains:     run.Domains,
	}
	if out.Domains == nil {
		out.Domains = []entity.DomainReport{}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// FormatValue prints scalars verbatim and nested values as compact JSON
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return entity.NotAvailable
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case map[string]any, []any:
		data, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(data)
	default:
		return fmt.Sprint(x)
	}
}
