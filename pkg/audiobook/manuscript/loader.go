package manuscript

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Load は原稿ファイルを読み込み、拡張子に応じた方法で章に分割します。
// .docx は構造化文書として、それ以外はプレーンテキストとして扱います。
func Load(fs afero.Fs, path string, seg *Segmenter) ([]Chapter, error) {
	if seg == nil {
		seg = NewSegmenter(nil)
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, &ErrSourceUnreadable{Path: path, WrappedErr: err}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == SourceExtDocx {
		items, err := ReadDocx(data, path)
		if err != nil {
			return nil, err
		}
		slog.Debug("DOCXから段落を抽出しました。", "path", path, "paragraphs", len(items))
		return seg.SegmentStructured(items), nil
	}

	if ext != ".txt" && ext != "" {
		slog.Warn("未対応の拡張子のため、プレーンテキストとして読み込みます。", "path", path, "ext", ext)
	}
	return seg.SegmentPlain(string(data)), nil
}
