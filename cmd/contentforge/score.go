// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/contentforge/internal/draft"
	"github.com/pdiddy/contentforge/internal/llm"
	"github.com/pdiddy/contentforge/internal/quality"
)

var scoreCmd = &cobra.Command{
	Use:   "score <file.md>",
	Short: "Score an existing markdown article",
	Long: `Score rates a markdown article for readability, SEO, originality and,
with --deep, factual support of its claims. The topic used for keyword checks
comes from --topic, then the article's front matter title, then the file name.`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().String("topic", "", "focus keyword for the SEO checks")
	scoreCmd.Flags().Bool("deep", false, "extract and verify factual claims (needs generation and search keys)")
	scoreCmd.Flags().Bool("yaml", false, "output the report as YAML")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return errors.Wrapf(err, "reading %s", args[0])
	}
	content := string(data)

	topic, _ := cmd.Flags().GetString("topic")
	if topic == "" {
		fm, _ := draft.ParseFrontMatter(content)
		topic = fm.Title
	}
	if topic == "" {
		topic = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	}

	cfg := loadPipelineConfig()
	deep, _ := cmd.Flags().GetBool("deep")
	var engine llm.Engine
	if deep {
		e, err := newEngine(cfg.AI)
		if err != nil {
			return err
		}
		engine = e
	}

	report, err := newAnalyzer(cfg, engine, deep).Analyze(context.Background(), content, topic, deep)
	if err != nil {
		return err
	}

	if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(report)
	}
	fmt.Println(quality.Report(report))
	return nil
}
