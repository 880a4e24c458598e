package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/shouni/go-audiobook/pkg/audiobook"
	"github.com/shouni/go-audiobook/pkg/voicevox/api"
	"github.com/shouni/go-audiobook/pkg/voicevox/speaker"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <source>",
		Short: "原稿からオーディオブックを生成します",
		Long: `原稿 (.docx または .txt) を章に分割し、VOICEVOXで音声合成して
章ごとのファイルと全章を結合したファイルを出力します。`,
		Args: cobra.ExactArgs(1),
		RunE: runBuild,
	}
	addConfigFlags(cmd.Flags())
	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	source := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	slog.Info("Executorの初期化を開始します...", "source", source)
	executor, cleanup, err := audiobook.NewExecutor(ctx, cfg)
	if err != nil {
		logExecutorHint(err, cfg.APIURL)
		return err
	}
	defer func() {
		if err := cleanup(); err != nil {
			slog.Warn("リソースの解放に失敗しました。", "error", err)
		}
	}()

	result, err := executor.Execute(ctx, source)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printChapters(out, result)
	if result.CombinedPath == "" {
		return nil
	}
	absPath, err := filepath.Abs(result.CombinedPath)
	if err != nil {
		absPath = result.CombinedPath
	}
	fmt.Fprintf(out, "✅ オーディオブックを生成しました: %s (%s)\n", absPath, result.TotalDuration().Round(time.Second))
	return nil
}

// logExecutorHint は初期化の失敗原因がエンジンとの接続にある場合のみ対処方法をログに出します。
func logExecutorHint(err error, apiURL string) {
	var (
		networkErr *api.ErrAPINetwork
		jsonErr    *api.ErrInvalidJSON
		fieldErr   *speaker.ErrMissingRequiredField
		voiceErr   *speaker.ErrUnknownVoice
	)
	switch {
	case errors.As(err, &networkErr), errors.As(err, &jsonErr), errors.As(err, &fieldErr):
		slog.Error("VOICEVOXエンジンが起動しているか、またはAPI URLが正しいか確認してください。", "api_url", apiURL)
	case errors.As(err, &voiceErr):
		slog.Error("voices コマンドで利用できる声を確認してください。", "voice", voiceErr.Voice)
	}
}
