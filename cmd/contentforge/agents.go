// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pdiddy/contentforge/internal/draft"
	"github.com/pdiddy/contentforge/internal/pipeline"
	"github.com/pdiddy/contentforge/pkg/types"
)

var agentsCmd = &cobra.Command{
	Use:   "agents [id]",
	Short: "List the pipeline agents and content formats",
	Long: `Agents prints the agent of every pipeline stage and the supported content
formats. With an agent ID (researcher, visual_curator, writer, editor,
quality_analyst) only that agent is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := ""
		if len(args) == 1 {
			id = args[0]
		}
		return printAgents(os.Stdout, id)
	},
}

func init() {
	rootCmd.AddCommand(agentsCmd)
}

func printAgents(w io.Writer, id string) error {
	if id != "" {
		a, ok := pipeline.AgentByID(id)
		if !ok {
			return errors.WithHint(errors.Newf("unknown agent %q", id), "run agents without arguments to list them")
		}
		printAgent(w, 0, a)
		return nil
	}
	for i, a := range pipeline.Agents() {
		printAgent(w, i+1, a)
	}
	fmt.Fprintln(w, "\nFormats:")
	for _, f := range draft.Formats() {
		fmt.Fprintf(w, "  %s %-10s  %s: %s\n", f.Icon, f.Format, f.Name, f.Description)
	}
	return nil
}

func printAgent(w io.Writer, n int, a types.Agent) {
	if n > 0 {
		fmt.Fprintf(w, "%d. ", n)
	}
	fmt.Fprintf(w, "%s %s (%s)\n   %s\n", a.Avatar, a.Name, a.NameEN, a.Description)
	fmt.Fprintf(w, "   %s\n", strings.Join(a.Tasks, ", "))
}
