package audio

import (
	"context"

	"github.com/spf13/afero"
)

// Tags は出力ファイルに埋め込むメタデータです。
type Tags struct {
	Album  string
	Artist string
	Title  string
}

// Encoder はトラックを出力形式のバイト列に変換します。
type Encoder interface {
	// Ext は出力ファイルの拡張子 (ドットなし) を返します。
	Ext() string
	// Encode はトラックをタグ付きで出力形式に変換します。
	Encode(ctx context.Context, track *Track, tags Tags) ([]byte, error)
}

// ----------------------------------------------------------------------
// WAV エンコーダー (外部コマンド不要)
// ----------------------------------------------------------------------

// WAVEncoder はトラックを LIST/INFO タグ付きの WAV として出力します。
type WAVEncoder struct{}

// Ext は "wav" を返します。
func (WAVEncoder) Ext() string {
	return "wav"
}

// Encode はトラックを WAV に変換します。
func (WAVEncoder) Encode(_ context.Context, track *Track, tags Tags) ([]byte, error) {
	return track.WAV(tags)
}

// ----------------------------------------------------------------------
// ファイル出力
// ----------------------------------------------------------------------

// ExportFile はトラックをエンコードし、path に書き込みます。
func ExportFile(ctx context.Context, fs afero.Fs, enc Encoder, track *Track, path string, tags Tags) error {
	data, err := enc.Encode(ctx, track, tags)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return &ErrExport{Path: path, WrappedErr: err}
	}
	return nil
}
