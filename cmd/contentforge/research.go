// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pdiddy/contentforge/internal/research"
	"github.com/pdiddy/contentforge/internal/search"
	"github.com/pdiddy/contentforge/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research <topic>",
	Short: "Run layered research for a topic",
	Long: `Research issues the planned queries of every research layer, merges the
results, extracts statistics and quotations, and prints the compiled research
document. Use --out to save a snapshot that create --research can replay.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResearch,
}

func init() {
	researchCmd.Flags().String("format", string(types.FormatStandard), "content format, selects the format-specific layer")
	researchCmd.Flags().Bool("json", false, "output the research as JSON")
	researchCmd.Flags().Bool("results", false, "print a table of results per layer")
	researchCmd.Flags().String("layer", "", "print only the results table of this layer (e.g. statistics, news)")
	researchCmd.Flags().String("out", "", "write a YAML research snapshot to this path")

	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	cfg := loadPipelineConfig()
	gw := search.NewSerperGateway(cfg.Search, logger)
	if !gw.Enabled() {
		return errors.WithHint(errors.New("search API key not configured"),
			"set search.api_key in contentforge.yaml, CONTENTFORGE_SEARCH_API_KEY, or .secrets/serper-api-key")
	}

	format, _ := cmd.Flags().GetString("format")
	topic := strings.Join(args, " ")
	agg := research.NewAggregator(gw, cfg.Research, logger)
	r := agg.Research(context.Background(), topic, types.ContentRequest{Format: types.ContentFormat(format)}.Normalize().Format)

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := research.WriteSnapshot(out, r, time.Now()); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Snapshot written to %s\n", out)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	if layer, _ := cmd.Flags().GetString("layer"); layer != "" {
		return printLayerResults(os.Stdout, r, types.LayerKey(layer))
	}
	if table, _ := cmd.Flags().GetBool("results"); table {
		for _, l := range r.Layers {
			printLayer(os.Stdout, l)
		}
		fmt.Println()
	}

	fmt.Println(r.CompiledText)
	fmt.Fprintf(os.Stderr, "%d sources, %d statistics, %d quotes\n", r.SourcesCount, len(r.Statistics), len(r.Quotes))
	return nil
}

// printLayerResults writes the results table of one layer.
func printLayerResults(w io.Writer, r *types.AggregatedResearch, key types.LayerKey) error {
	l, ok := r.Layer(key)
	if !ok {
		return errors.Newf("layer %q not in this research", key)
	}
	printLayer(w, l)
	return nil
}

func printLayer(w io.Writer, l types.LayerResults) {
	fmt.Fprintf(w, "\n%s %s (%d queries)\n", l.Category.Icon, l.Category.Name, l.QueryCount)
	search.FormatTable(l.Results, w)
}
