package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ffmpegCodecs は出力形式ごとの ffmpeg のエンコーダー名です。
var ffmpegCodecs = map[string]string{
	"mp3":  "libmp3lame",
	"ogg":  "libvorbis",
	"opus": "libopus",
	"flac": "flac",
}

// SupportedFFmpegFormats は FFmpegEncoder が出力できる形式かどうかを返します。
func SupportedFFmpegFormats(format string) bool {
	_, ok := ffmpegCodecs[format]
	return ok
}

// CommandRunner は外部コマンドを実行し、標準出力を返します。
// テストで ffmpeg を差し替えるために使用します。
type CommandRunner interface {
	Run(ctx context.Context, stdin []byte, name string, args ...string) (stdout []byte, stderr string, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = bytes.NewReader(stdin)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), strings.TrimSpace(stderr.String()), err
}

// FFmpegEncoder は WAV を ffmpeg にパイプで渡し、圧縮形式に変換します。
type FFmpegEncoder struct {
	ffmpegPath string
	format     string
	bitrate    string
	runner     CommandRunner
}

// FFmpegOption は FFmpegEncoder の設定を変更します。
type FFmpegOption func(*FFmpegEncoder)

// WithCommandRunner はコマンドの実行方法を差し替えます。
func WithCommandRunner(r CommandRunner) FFmpegOption {
	return func(e *FFmpegEncoder) {
		if r != nil {
			e.runner = r
		}
	}
}

// NewFFmpegEncoder は FFmpegEncoder を生成します。
func NewFFmpegEncoder(ffmpegPath, format, bitrate string, opts ...FFmpegOption) (*FFmpegEncoder, error) {
	if !SupportedFFmpegFormats(format) {
		return nil, fmt.Errorf("ffmpeg の出力形式 %q には対応していません", format)
	}
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}

	e := &FFmpegEncoder{
		ffmpegPath: ffmpegPath,
		format:     format,
		bitrate:    bitrate,
		runner:     execRunner{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Ext は出力形式を返します。
func (e *FFmpegEncoder) Ext() string {
	return e.format
}

// Encode はトラックを ffmpeg で変換します。
func (e *FFmpegEncoder) Encode(ctx context.Context, track *Track, tags Tags) ([]byte, error) {
	wav, err := track.WAV(Tags{})
	if err != nil {
		return nil, err
	}

	out, stderr, err := e.runner.Run(ctx, wav, e.ffmpegPath, e.args(tags)...)
	if err != nil {
		return nil, &ErrEncode{Format: e.format, Stderr: stderr, WrappedErr: err}
	}
	if len(out) == 0 {
		return nil, &ErrEncode{Format: e.format, Stderr: stderr, WrappedErr: fmt.Errorf("ffmpeg の出力が空です")}
	}
	return out, nil
}

// args は標準入力の WAV を標準出力へ変換する ffmpeg の引数を組み立てます。
func (e *FFmpegEncoder) args(tags Tags) []string {
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-f", "wav", "-i", "pipe:0",
		"-vn", "-codec:a", ffmpegCodecs[e.format],
	}
	if e.bitrate != "" && e.format != "flac" {
		args = append(args, "-b:a", e.bitrate)
	}
	for _, kv := range [][2]string{{"album", tags.Album}, {"artist", tags.Artist}, {"title", tags.Title}} {
		if kv[1] != "" {
			args = append(args, "-metadata", kv[0]+"="+kv[1])
		}
	}
	if e.format == "mp3" {
		args = append(args, "-id3v2_version", "3")
	}
	return append(args, "-f", e.format, "pipe:1")
}
