// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/contentforge/internal/draft"
	"github.com/pdiddy/contentforge/internal/pipeline"
	"github.com/pdiddy/contentforge/internal/quality"
	"github.com/pdiddy/contentforge/internal/research"
	"github.com/pdiddy/contentforge/internal/store"
	"github.com/pdiddy/contentforge/pkg/types"
)

var createCmd = &cobra.Command{
	Use:   "create <topic>",
	Short: "Research, write, edit and score an article",
	Long: `Create runs the full pipeline for a topic: layered research, image lookup,
drafting, editing and quality scoring. Progress is printed as each stage
starts and finishes. The article is written to the output directory and the
quality report is printed at the end.

Use --research to draft from a snapshot saved by "research --out" instead of
searching again.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().String("audience", string(types.AudienceGeneral), "target audience: general, professional, entrepreneur, technical")
	createCmd.Flags().String("tone", string(types.ToneFriendly), "tone: formal, friendly, educational, persuasive")
	createCmd.Flags().String("length", string(types.LengthMedium), "length: short, medium, long")
	createCmd.Flags().String("format", string(types.FormatStandard), "format: standard, listicle, howto, comparison, casestudy")
	createCmd.Flags().Bool("deep", true, "fact-check claims during scoring")
	createCmd.Flags().String("output-dir", "", "directory for generated markdown (default from config, outputs)")
	createCmd.Flags().String("research", "", "research snapshot to draft from instead of searching")
	createCmd.Flags().Bool("save", false, "store the article in the content database")
	createCmd.Flags().String("user", "local", "user ID for --save")

	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg := loadPipelineConfig()
	if cmd.Flags().Changed("deep") {
		cfg.DeepCheck, _ = cmd.Flags().GetBool("deep")
	}
	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		cfg.OutputDir = dir
	}
	req := requestFromFlags(cmd, strings.Join(args, " "))

	var researcher pipeline.Researcher
	if path, _ := cmd.Flags().GetString("research"); path != "" {
		snap, err := research.ReadSnapshot(path)
		if err != nil {
			return err
		}
		researcher = research.NewReplay(&snap.Research)
	}

	orch, err := newOrchestrator(cfg, researcher)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	save, _ := cmd.Flags().GetBool("save")
	user, _ := cmd.Flags().GetString("user")
	var st *store.Store
	if save {
		st, err = openStore(cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()
		if _, err := st.CheckQuota(ctx, user, time.Now()); err != nil {
			return err
		}
	}

	events := make(chan types.PipelineEvent)
	var (
		res    *pipeline.Result
		runErr error
	)
	go func() {
		res, runErr = orch.Run(ctx, req, events)
		close(events)
	}()
	for ev := range events {
		printEvent(os.Stderr, ev)
	}
	if runErr != nil {
		return runErr
	}

	path, err := draft.SaveMarkdown(cfg.OutputDir, req.Topic, res.Content, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "\nArticle written to %s\n\n", path)
	fmt.Println(quality.Report(res.Quality))

	if st != nil {
		q := res.Quality
		rec, err := st.SaveContent(ctx, types.ContentRecord{
			UserID:  user,
			Topic:   req.Topic,
			Content: res.Content,
			Quality: &q,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved as %s\n", rec.ID)
	}
	return nil
}

func requestFromFlags(cmd *cobra.Command, topic string) types.ContentRequest {
	audience, _ := cmd.Flags().GetString("audience")
	tone, _ := cmd.Flags().GetString("tone")
	length, _ := cmd.Flags().GetString("length")
	format, _ := cmd.Flags().GetString("format")
	return types.ContentRequest{
		Topic:    topic,
		Audience: types.Audience(audience),
		Tone:     types.Tone(tone),
		Length:   types.Length(length),
		Format:   types.ContentFormat(format),
	}.Normalize()
}
