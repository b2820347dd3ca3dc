package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"wareki/internal/wareki"
)

var erasMarkdown bool

// erasCmd lists the era table
var erasCmd = &cobra.Command{
	Use:   "eras",
	Short: "List the supported eras, newest first",
	RunE:  runEras,
}

func init() {
	erasCmd.Flags().BoolVar(&erasMarkdown, "markdown", false, "Render the table as markdown")
}

func runEras(cmd *cobra.Command, args []string) error {
	eras := wareki.Eras()
	w := cmd.OutOrStdout()

	if !erasMarkdown {
		return writeErasText(w, eras)
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	rendered, err := renderer.Render(erasMarkdownTable(eras))
	if err != nil {
		return fmt.Errorf("failed to render eras: %w", err)
	}
	fmt.Fprint(w, rendered)
	return nil
}

func writeErasText(w io.Writer, eras []wareki.Era) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tLABEL\tYEARS\tALIASES")
	for _, e := range eras {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Key, e.Label, eraSpan(e), strings.Join(e.Aliases, " "))
	}
	return tw.Flush()
}

func erasMarkdownTable(eras []wareki.Era) string {
	var sb strings.Builder
	sb.WriteString("# Eras\n\n")
	sb.WriteString("| Key | Label | Years | Aliases |\n")
	sb.WriteString("|-----|-------|-------|---------|\n")
	for _, e := range eras {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", e.Key, e.Label, eraSpan(e), strings.Join(e.Aliases, ", "))
	}
	return sb.String()
}

func eraSpan(e wareki.Era) string {
	if e.IsOngoing() {
		return fmt.Sprintf("%d-", e.Start)
	}
	return fmt.Sprintf("%d-%d", e.Start, e.End)
}
