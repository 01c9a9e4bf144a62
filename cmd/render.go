package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"pscan/core/facet"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func checkOutput(format string) error {
	switch format {
	case outputTable, outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (table, json, yaml)", format)
	}
}

// ParamsOutput is the payload of the params command.
type ParamsOutput struct {
	Params []string `json:"params" yaml:"params"`
}

// ResolveOutput is the payload of the resolve command.
type ResolveOutput struct {
	Status string    `json:"status" yaml:"status"`
	Path   string    `json:"path,omitempty" yaml:"path,omitempty"`
	Key    facet.Key `json:"key,omitzero" yaml:"key,omitempty"`
	Count  int       `json:"count,omitempty" yaml:"count,omitempty"`
	Paths  []string  `json:"paths,omitempty" yaml:"paths,omitempty"`
}

// NewResolveOutput converts a lookup result.
func NewResolveOutput(res facet.Result) ResolveOutput {
	out := ResolveOutput{Status: res.Kind.String()}
	switch res.Kind {
	case facet.Unique:
		out.Path = res.Path
		out.Key = res.Record.Key
	case facet.Ambiguous:
		out.Count = res.Count()
		out.Paths = res.Paths()
	}
	return out
}

// ScanOutput is the payload of the scan command.
type ScanOutput struct {
	Params  []string       `json:"params" yaml:"params"`
	Records []facet.Record `json:"records" yaml:"records"`
	Notices []facet.Notice `json:"notices" yaml:"notices"`
}

// render writes v as JSON or YAML, or calls table for the table format.
func render(w io.Writer, format string, v any, table func(tw *tabwriter.Writer)) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		table(tw)
		return tw.Flush()
	}
}

func renderParams(w io.Writer, format string, out ParamsOutput) error {
	return render(w, format, out, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "PARAM")
		for _, p := range out.Params {
			fmt.Fprintln(tw, p)
		}
	})
}

func renderOptions(w io.Writer, format string, opts facet.Options) error {
	if opts == nil {
		opts = facet.Options{}
	}
	return render(w, format, opts, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "PARAM\tVALUES")
		for _, name := range opts.Names() {
			fmt.Fprintf(tw, "%s\t%s\n", name, strings.Join(opts[name], ", "))
		}
	})
}

func renderResolve(w io.Writer, format string, out ResolveOutput) error {
	return render(w, format, out, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "STATUS\t%s\n", out.Status)
		switch out.Status {
		case facet.Unique.String():
			fmt.Fprintf(tw, "PATH\t%s\n", out.Path)
			fmt.Fprintf(tw, "KEY\t%s\n", out.Key)
		case facet.Ambiguous.String():
			fmt.Fprintf(tw, "COUNT\t%d\n", out.Count)
			for _, p := range out.Paths {
				fmt.Fprintf(tw, "PATH\t%s\n", p)
			}
		}
	})
}

func renderScan(w io.Writer, format string, out ScanOutput) error {
	return render(w, format, out, func(tw *tabwriter.Writer) {
		header := make([]string, 0, len(out.Params)+1)
		for _, p := range out.Params {
			header = append(header, strings.ToUpper(p))
		}
		header = append(header, "PATH")
		fmt.Fprintln(tw, strings.Join(header, "\t"))

		for _, rec := range out.Records {
			row := make([]string, 0, len(out.Params)+1)
			for _, p := range out.Params {
				v, ok := rec.Key.Get(p)
				if !ok {
					v = "-"
				}
				row = append(row, v)
			}
			row = append(row, rec.Path)
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}

		if len(out.Notices) > 0 {
			fmt.Fprintln(tw)
			fmt.Fprintln(tw, "NOTICE\tMESSAGE")
			for _, n := range out.Notices {
				fmt.Fprintf(tw, "%s\t%s\n", n.Kind, n.Message)
			}
		}
	})
}
