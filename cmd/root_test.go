package main

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-audiobook/pkg/audiobook"
	"github.com/shouni/go-audiobook/pkg/voicevox/api"
	"github.com/shouni/go-audiobook/pkg/voicevox/speaker"
)

func TestChangedFlags(t *testing.T) {
	t.Run("Should map only explicitly set flags to config keys", func(t *testing.T) {
		flags := pflag.NewFlagSet("build", pflag.ContinueOnError)
		addConfigFlags(flags)
		require.NoError(t, flags.Parse([]string{"--outdir", "/tmp/out", "--rate=+10%", "--no-per-chapter", "--max-chars", "900"}))

		assert.Equal(t, map[string]any{
			"out_dir":     "/tmp/out",
			"rate":        "+10%",
			"per_chapter": false,
			"max_chars":   "900",
		}, changedFlags(flags))
	})

	t.Run("Should return nothing when no flag is set", func(t *testing.T) {
		flags := pflag.NewFlagSet("build", pflag.ContinueOnError)
		addConfigFlags(flags)
		require.NoError(t, flags.Parse(nil))
		assert.Empty(t, changedFlags(flags))
	})
}

func TestFlagKeys(t *testing.T) {
	flags := pflag.NewFlagSet("build", pflag.ContinueOnError)
	addConfigFlags(flags)

	for name := range flagKeys {
		assert.NotNil(t, flags.Lookup(name), "flag %s should be registered", name)
	}
}

func TestChaptersCommand(t *testing.T) {
	t.Setenv("VOICEVOX_API_URL", "")
	source := filepath.Join(t.TempDir(), "book.txt")
	require.NoError(t, os.WriteFile(source, []byte("Luku 1\nHello world.\n\nLuku 2\nBye."), 0o600))

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"chapters", source, "--env-file", ""})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Luku 1")
	assert.Contains(t, out.String(), "Luku 2")
	assert.Contains(t, out.String(), "CHUNKS")
}

func TestLogExecutorHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "Should point to the engine on a network failure",
			err:  fmt.Errorf("接続に失敗しました: %w", &api.ErrAPINetwork{Endpoint: "/speakers", WrappedErr: errors.New("refused")}),
			want: "VOICEVOXエンジンが起動しているか",
		},
		{
			name: "Should point to the engine when the speaker list is broken",
			err:  &speaker.ErrMissingRequiredField{Field: "styles", Context: "/speakers 応答"},
			want: "VOICEVOXエンジンが起動しているか",
		},
		{
			name: "Should point to the voices command for an unknown voice",
			err:  &speaker.ErrUnknownVoice{Voice: "nobody"},
			want: "voices コマンド",
		},
		{
			name: "Should stay quiet when ffmpeg is missing",
			err:  &audiobook.ErrFFmpegNotFound{Path: "ffmpeg", Format: "mp3", WrappedErr: errors.New("not found")},
		},
		{
			name: "Should stay quiet for a broken keywords file",
			err:  errors.New("キーワード定義ファイル rules.yaml の解析に失敗しました"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			prev := slog.Default()
			slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
			t.Cleanup(func() { slog.SetDefault(prev) })

			logExecutorHint(tt.err, "http://127.0.0.1:50021")

			if tt.want == "" {
				assert.Empty(t, logs.String())
				return
			}
			assert.Contains(t, logs.String(), tt.want)
		})
	}
}
