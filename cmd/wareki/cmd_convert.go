package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"wareki/internal/logging"
	"wareki/internal/wareki"
)

var outputFormat string

// errSomeUnparseable makes the process exit non-zero after all queries ran.
var errSomeUnparseable = errors.New("some queries could not be parsed")

// convertCmd converts queries without the UI
var convertCmd = &cobra.Command{
	Use:   "convert [query...]",
	Short: "Convert one or more years and print every representation",
	Long: `Converts each query and prints the results. A query is a Gregorian year
(2020) or an era year (令和2, R2, h32, 昭和95).

Examples:
  wareki convert 2020
  wareki convert R5 H30 --output json
  wareki convert s64 --output yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json, yaml")
}

// convertResult is one query in json or yaml output.
type convertResult struct {
	Query   string                  `json:"query" yaml:"query"`
	Year    int                     `json:"year,omitempty" yaml:"year,omitempty"`
	Results []wareki.Representation `json:"results" yaml:"results"`
	Error   string                  `json:"error,omitempty" yaml:"error,omitempty"`
}

func runConvert(cmd *cobra.Command, args []string) error {
	log := logging.For(logger, logging.CategoryCLI)

	out := make([]convertResult, 0, len(args))
	failed := 0
	for _, query := range args {
		conv := convertQuery(query)
		res := convertResult{Query: conv.Query, Year: conv.Year, Results: conv.Results}
		if !conv.OK() {
			failed++
			res.Error = conv.Err.Error()
			log.Debug("Unparseable query", zap.String("query", query), zap.Error(conv.Err))
		}
		out = append(out, res)
	}

	if err := writeResults(cmd.OutOrStdout(), outputFormat, out); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errSomeUnparseable, failed, len(args))
	}
	return nil
}

func convertQuery(query string) wareki.Conversion {
	q := query
	if cfg != nil && cfg.NormalizeInput {
		q = wareki.Normalize(q)
	}
	conv := wareki.Resolve(q)
	conv.Query = query
	return conv
}

func writeResults(w io.Writer, format string, results []convertResult) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()

	case "text":
		for i, r := range results {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if r.Error != "" {
				fmt.Fprintf(w, "%s: cannot parse\n", r.Query)
				continue
			}
			if len(results) > 1 {
				fmt.Fprintf(w, "%s:\n", r.Query)
			}
			for _, rep := range r.Results {
				fmt.Fprintln(w, rep.Text)
			}
		}
		return nil

	default:
		return fmt.Errorf("unknown output format %q (valid: text, json, yaml)", format)
	}
}
