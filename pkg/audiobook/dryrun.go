package audiobook

import (
	"context"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/shouni/go-audiobook/pkg/audiobook/chunker"
	"github.com/shouni/go-audiobook/pkg/audiobook/manuscript"
)

// ----------------------------------------------------------------------
// ドライラン
// ----------------------------------------------------------------------

// Planner は音声合成を行わずに、章分割とチャンク分割の結果だけを報告する Executor です。
// VOICEVOX エンジンや ffmpeg がなくても動作します。
type Planner struct {
	fs        afero.Fs
	segmenter *manuscript.Segmenter
	splitter  *chunker.Splitter
}

// NewPlanner は Planner を作成します。nil の依存関係はデフォルトで補われます。
func NewPlanner(fs afero.Fs, segmenter *manuscript.Segmenter, splitter *chunker.Splitter) *Planner {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if segmenter == nil {
		segmenter = manuscript.NewSegmenter(nil)
	}
	if splitter == nil {
		splitter = chunker.New()
	}
	return &Planner{fs: fs, segmenter: segmenter, splitter: splitter}
}

// Execute は原稿を章とチャンクに分割し、その結果を返します。ファイルは書き出しません。
func (p *Planner) Execute(ctx context.Context, sourcePath string) (*Result, error) {
	chapters, err := manuscript.Load(p.fs, sourcePath, p.segmenter)
	if err != nil {
		return nil, err
	}
	if isEmptyManuscript(chapters) {
		return nil, &ErrEmptyManuscript{Path: sourcePath}
	}

	result := &Result{Chapters: make([]ChapterReport, 0, len(chapters))}
	totalChunks := 0
	for i, ch := range chapters {
		parts := p.splitter.Split(ch.Text)
		totalChunks += len(parts)
		result.Chapters = append(result.Chapters, ChapterReport{
			Number: i + 1,
			Title:  ch.Title,
			Chunks: len(parts),
			Chars:  len([]rune(ch.Text)),
		})
	}

	slog.InfoContext(ctx, "ドライランのため音声合成はスキップされました。",
		"source", sourcePath,
		"chapters", len(result.Chapters),
		"chunks", totalChunks)
	return result, nil
}
