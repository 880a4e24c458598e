package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shouni/go-audiobook/pkg/voicevox/api"
	"github.com/shouni/go-audiobook/pkg/voicevox/speaker"
)

func newVoicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voices",
		Short: "VOICEVOXエンジンで利用できる声を一覧表示します",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			client := api.NewClient(cfg.APIURL, cfg.HTTPTimeout)
			catalog, err := speaker.LoadCatalog(cmd.Context(), client)
			if err != nil {
				return fmt.Errorf("話者データのロードに失敗しました: %w", err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tVOICE")
			for _, v := range catalog.Voices() {
				fmt.Fprintf(tw, "%d\t%s\n", v.ID, v.Key())
			}
			return tw.Flush()
		},
	}
	cmd.Flags().String("api-url", "", "VOICEVOXエンジンの URL")
	return cmd
}
