package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/shouni/go-audiobook/pkg/audiobook"
)

func newChaptersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chapters <source>",
		Short: "検出された章とチャンク数を表示します",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			planner, err := audiobook.NewPlannerFromConfig(afero.NewOsFs(), cfg)
			if err != nil {
				return err
			}
			result, err := planner.Execute(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printChapters(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().Int("max-chars", 0, "1チャンクの最大文字数")
	cmd.Flags().String("keywords-file", "", "章キーワード定義の YAML ファイル")
	return cmd
}

// printChapters は章ごとの処理結果を表形式で出力します。
func printChapters(w io.Writer, result *audiobook.Result) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTITLE\tCHARS\tCHUNKS\tDURATION\tFILE")
	for _, ch := range result.Chapters {
		duration := "-"
		if ch.Duration > 0 {
			duration = ch.Duration.Round(10 * time.Millisecond).String()
		}
		file := ch.Path
		if file == "" {
			file = "-"
		}
		fmt.Fprintf(tw, "%02d\t%s\t%d\t%d\t%s\t%s\n", ch.Number, ch.Title, ch.Chars, ch.Chunks, duration, file)
	}
	tw.Flush()
}
