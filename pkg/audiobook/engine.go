package audiobook

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/shouni/go-audiobook/pkg/audiobook/audio"
	"github.com/shouni/go-audiobook/pkg/audiobook/chunker"
	"github.com/shouni/go-audiobook/pkg/audiobook/manuscript"
	"github.com/shouni/go-audiobook/pkg/audiobook/tts"
)

// Builder は原稿を章ごとに音声合成し、章ファイルと結合ファイルを書き出します。
// 章もチャンクも原稿の順序どおりに1つずつ処理します。
type Builder struct {
	synth     tts.Synthesizer
	encoder   audio.Encoder
	fs        afero.Fs
	segmenter *manuscript.Segmenter
	splitter  *chunker.Splitter
	config    BuildConfig
}

// BuildConfig は Builder の出力設定です。
type BuildConfig struct {
	OutDir string
	Album  string
	Author string

	Voice  string
	Rate   string
	Volume string

	PerChapter   bool
	CombinedName string
	ChapterGap   time.Duration
	ChunkPause   time.Duration
}

// ----------------------------------------------------------------------
// オプション定義 (Functional Options Pattern)
// ----------------------------------------------------------------------

// BuilderOption は Builder の依存関係を差し替えるための関数シグネチャです。
type BuilderOption func(*Builder)

// WithFs はファイルシステムを差し替えます。テストでは afero.NewMemMapFs を渡します。
func WithFs(fs afero.Fs) BuilderOption {
	return func(b *Builder) {
		if fs != nil {
			b.fs = fs
		}
	}
}

// WithSegmenter は章の分割規則を差し替えます。
func WithSegmenter(s *manuscript.Segmenter) BuilderOption {
	return func(b *Builder) {
		if s != nil {
			b.segmenter = s
		}
	}
}

// WithSplitter はチャンク分割器を差し替えます。
func WithSplitter(s *chunker.Splitter) BuilderOption {
	return func(b *Builder) {
		if s != nil {
			b.splitter = s
		}
	}
}

// NewBuilder は新しい Builder を作成し、依存関係を注入します。
// Rate と Volume はここで一度だけパーセント表記に正規化されます。
func NewBuilder(synth tts.Synthesizer, encoder audio.Encoder, config BuildConfig, opts ...BuilderOption) *Builder {
	config.Rate = tts.EnsurePercent(config.Rate)
	config.Volume = tts.EnsurePercent(config.Volume)
	if config.ChunkPause <= 0 {
		config.ChunkPause = DefaultChunkPause
	}
	if config.ChapterGap < 0 {
		config.ChapterGap = DefaultChapterGap
	}
	if config.CombinedName == "" {
		config.CombinedName = "book_combined." + encoder.Ext()
	} else if filepath.Ext(config.CombinedName) == "" {
		config.CombinedName += "." + encoder.Ext()
	}

	b := &Builder{
		synth:     synth,
		encoder:   encoder,
		fs:        afero.NewOsFs(),
		segmenter: manuscript.NewSegmenter(nil),
		splitter:  chunker.New(),
		config:    config,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ----------------------------------------------------------------------
// メイン処理 (Execute メソッド)
// ----------------------------------------------------------------------

// Execute は原稿ファイルからオーディオブックを生成します。
// チャンクの一時ファイルは成功・失敗にかかわらず終了時に削除されます。
// 失敗した時点までに書き出された章ファイルは削除されません。
func (b *Builder) Execute(ctx context.Context, sourcePath string) (*Result, error) {
	// 1. 原稿の読み込みと章分割
	chapters, err := manuscript.Load(b.fs, sourcePath, b.segmenter)
	if err != nil {
		return nil, err
	}
	if isEmptyManuscript(chapters) {
		return nil, &ErrEmptyManuscript{Path: sourcePath}
	}
	slog.InfoContext(ctx, "原稿を章に分割しました。", "source", sourcePath, "chapters", len(chapters))

	// 2. 出力先と一時ディレクトリの準備
	if err := b.fs.MkdirAll(b.config.OutDir, 0o755); err != nil {
		return nil, &ErrOutput{Path: b.config.OutDir, WrappedErr: err}
	}
	tmpDir, err := afero.TempDir(b.fs, "", tempDirPrefix)
	if err != nil {
		return nil, &ErrOutput{Path: "(一時ディレクトリ)", WrappedErr: err}
	}
	defer func() {
		if err := b.fs.RemoveAll(tmpDir); err != nil {
			slog.WarnContext(ctx, "一時ディレクトリの削除に失敗しました。", "path", tmpDir, "error", err)
		}
	}()

	// 3. 章ごとの合成と書き出し
	result := &Result{Chapters: make([]ChapterReport, 0, len(chapters))}
	combined := audio.NewTrack()

	for i, ch := range chapters {
		number := i + 1
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		track, chunks, err := b.synthesizeChapter(ctx, tmpDir, number, ch)
		if err != nil {
			return nil, err
		}

		report := ChapterReport{
			Number:   number,
			Title:    ch.Title,
			Chunks:   chunks,
			Chars:    len([]rune(ch.Text)),
			Duration: track.Duration(),
		}

		if b.config.PerChapter {
			path := filepath.Join(b.config.OutDir, ChapterFileName(number, ch.Title, b.encoder.Ext()))
			tags := audio.Tags{Album: b.config.Album, Artist: b.config.Author, Title: ch.Title}
			if err := audio.ExportFile(ctx, b.fs, b.encoder, track, path, tags); err != nil {
				return nil, err
			}
			report.Path = path
			slog.InfoContext(ctx, "章ファイルを書き出しました。", "chapter", number, "path", path, "duration", report.Duration.String())
		}

		if err := combined.AppendTrack(track); err != nil {
			return nil, &ErrAssembly{Chapter: number, Title: ch.Title, WrappedErr: err}
		}
		if number < len(chapters) {
			if err := combined.AppendSilence(b.config.ChapterGap); err != nil {
				return nil, &ErrAssembly{Chapter: number, Title: ch.Title, WrappedErr: err}
			}
		}

		result.Chapters = append(result.Chapters, report)
	}

	// 4. 結合ファイルの書き出し
	combinedPath := filepath.Join(b.config.OutDir, b.config.CombinedName)
	tags := audio.Tags{Album: b.config.Album, Artist: b.config.Author, Title: sourceTitle(sourcePath)}
	if err := audio.ExportFile(ctx, b.fs, b.encoder, combined, combinedPath, tags); err != nil {
		return nil, err
	}
	result.CombinedPath = combinedPath

	slog.InfoContext(ctx, "オーディオブックの生成が完了しました。",
		"output_file", combinedPath,
		"chapters", len(result.Chapters),
		"duration", combined.Duration().String())

	return result, nil
}

// ----------------------------------------------------------------------
// ヘルパー関数
// ----------------------------------------------------------------------

// synthesizeChapter は1章分のチャンクを順に合成し、チャンク間に無音を挟んだトラックを返します。
// 各チャンクの音声は一時ディレクトリに個別のファイルとして書き出してから連結します。
func (b *Builder) synthesizeChapter(ctx context.Context, tmpDir string, number int, ch manuscript.Chapter) (*audio.Track, int, error) {
	parts := b.splitter.Split(ch.Text)
	slug := Slugify(ch.Title)

	slog.InfoContext(ctx, "章の音声合成を開始します。", "chapter", number, "title", ch.Title, "chunks", len(parts))

	track := audio.NewTrack()
	for idx, part := range parts {
		chunkNumber := idx + 1
		wrap := func(err error) error {
			return &ErrSynthesis{Chapter: number, Title: ch.Title, Chunk: chunkNumber, WrappedErr: err}
		}

		wavData, err := b.synth.Synthesize(ctx, tts.Request{
			Text:   part,
			Voice:  b.config.Voice,
			Rate:   b.config.Rate,
			Volume: b.config.Volume,
		})
		if err != nil {
			return nil, 0, wrap(err)
		}

		partFile := filepath.Join(tmpDir, fmt.Sprintf(chunkFileFormat, number, slug, idx))
		if err := afero.WriteFile(b.fs, partFile, wavData, 0o600); err != nil {
			return nil, 0, &ErrOutput{Path: partFile, WrappedErr: err}
		}
		stored, err := afero.ReadFile(b.fs, partFile)
		if err != nil {
			return nil, 0, &ErrOutput{Path: partFile, WrappedErr: err}
		}

		if err := track.AppendWAV(stored, chunkNumber); err != nil {
			return nil, 0, wrap(err)
		}
		if chunkNumber < len(parts) {
			if err := track.AppendSilence(b.config.ChunkPause); err != nil {
				return nil, 0, wrap(err)
			}
		}

		slog.DebugContext(ctx, "チャンクを合成しました。", "chapter", number, "chunk", chunkNumber, "total", len(parts), "chars", len([]rune(part)))
	}

	return track, len(parts), nil
}

// isEmptyManuscript は分割結果に読み上げる本文が1つもないかどうかを判定します。
func isEmptyManuscript(chapters []manuscript.Chapter) bool {
	for _, ch := range chapters {
		if strings.TrimSpace(ch.Text) != "" {
			return false
		}
	}
	return true
}

// sourceTitle は原稿ファイル名から拡張子を除いたものを返します。
func sourceTitle(sourcePath string) string {
	base := filepath.Base(sourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
