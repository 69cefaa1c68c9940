// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored articles of a user",
	Long: `History lists the articles stored for a user, newest first, together
with their overall quality score.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("user", "local", "user ID")
	historyCmd.Flags().Int("limit", 10, "maximum number of articles")
	historyCmd.Flags().Int("offset", 0, "number of articles to skip")
	historyCmd.Flags().Bool("json", false, "output records as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	user, _ := cmd.Flags().GetString("user")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	st, err := openStore(loadPipelineConfig().Store)
	if err != nil {
		return err
	}
	defer st.Close()

	recs, total, err := st.ListContents(context.Background(), user, limit, offset)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}

	if len(recs) == 0 {
		fmt.Println("No articles found.")
		return nil
	}
	fmt.Printf("%-36s  %-19s  %-7s  %s\n", "ID", "Created", "Quality", "Topic")
	fmt.Println(strings.Repeat("-", 100))
	for _, r := range recs {
		score := "-"
		if r.Quality != nil {
			score = fmt.Sprintf("%d %s", r.Quality.Overall.Score, r.Quality.Overall.Grade)
		}
		fmt.Printf("%-36s  %-19s  %-7s  %s\n", r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04:05"), score, r.Topic)
	}
	fmt.Printf("\n%d of %d articles\n", len(recs), total)
	return nil
}
