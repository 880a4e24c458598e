package manuscript

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"
)

// Segmenter は原稿を章に分割します。
// 分割は失敗せず、必ず1つ以上の章を返します。
type Segmenter struct {
	rules *Rules
}

// NewSegmenter は Segmenter を生成します。rules が nil の場合は DefaultRules を使います。
func NewSegmenter(rules *Rules) *Segmenter {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Segmenter{rules: rules}
}

// Rules は Segmenter が使用している判定規則を返します。
func (s *Segmenter) Rules() *Rules {
	return s.rules
}

// ----------------------------------------------------------------------
// 公開ロジック
// ----------------------------------------------------------------------

// SegmentStructured は構造化文書の段落列を章に分割します。
// 見出しスタイルの段落、またはキーワードで始まる段落が章の開始になります。
func (s *Segmenter) SegmentStructured(items []SourceItem) []Chapter {
	cfg := foldConfig{
		separator: paragraphSeparator,
		placeholder: func(int) string {
			return UntitledTitle
		},
	}

	acc := fold{}
	texts := make([]string, 0, len(items))
	for _, item := range items {
		text := strings.TrimSpace(item.Text)
		if text == "" {
			continue
		}
		texts = append(texts, text)

		isTrigger := s.rules.IsHeadingStyle(item.StyleHint) || s.rules.IsKeywordHeading(text)
		acc = cfg.step(acc, isTrigger, text, text)
	}

	if chapters := cfg.finish(acc); len(chapters) > 0 {
		return chapters
	}
	return fallbackChapter(strings.Join(texts, paragraphSeparator))
}

// SegmentPlain はプレーンテキストを行単位で章に分割します。
// 行頭がキーワードに一致する行が章の開始になり、その行 (トリム後) が章タイトルになります。
func (s *Segmenter) SegmentPlain(text string) []Chapter {
	text = NormalizeSource(text)

	cfg := foldConfig{
		separator: lineSeparator,
		placeholder: func(emitted int) string {
			return fmt.Sprintf(plainTitleFormat, emitted+1)
		},
	}

	lines := strings.Split(text, lineSeparator)
	if n := len(lines); n > 0 && lines[n-1] == "" {
		// 末尾の改行は空行として扱わない
		lines = lines[:n-1]
	}

	acc := fold{}
	for _, raw := range lines {
		line := strings.TrimRightFunc(raw, unicode.IsSpace)
		isTrigger := s.rules.IsKeywordHeading(line)
		acc = cfg.step(acc, isTrigger, strings.TrimSpace(line), line)
	}

	if chapters := cfg.finish(acc); len(chapters) > 0 {
		return chapters
	}

	return fallbackChapter(text)
}

// ----------------------------------------------------------------------
// 内部処理ロジック (章の畳み込み)
// ----------------------------------------------------------------------

// fold は入力を順に畳み込む際のアキュムレータです。
type fold struct {
	title     string
	hasTitle  bool
	triggered bool // 見出しが一度でも現れたか
	lines     []string
	chapters  []Chapter
}

// foldConfig は形式ごとの結合方法とプレースホルダータイトルを保持します。
type foldConfig struct {
	separator   string
	placeholder func(emitted int) string
}

// step は1つの入力要素をアキュムレータに適用します。
// トリガーの場合は title を新しい章タイトルに、そうでなければ line を本文バッファに追加します。
func (c foldConfig) step(acc fold, isTrigger bool, title, line string) fold {
	if !isTrigger {
		acc.lines = append(acc.lines, line)
		return acc
	}

	if len(acc.lines) > 0 {
		var chapter *Chapter
		acc, chapter = c.flush(acc)
		acc = acc.emit(chapter)
	} else if acc.hasTitle {
		slog.Debug("本文のない見出しは章として出力されません。", "dropped_title", acc.title, "next_title", title)
	}

	acc.title = title
	acc.hasTitle = true
	acc.triggered = true
	return acc
}

// flush はバッファを章として確定します。
// 結合した本文がトリム後に空の場合は章を返しません。タイトルとバッファは常にリセットされます。
func (c foldConfig) flush(acc fold) (fold, *Chapter) {
	next := fold{triggered: acc.triggered, chapters: acc.chapters}

	content := strings.TrimSpace(strings.Join(acc.lines, c.separator))
	if content == "" {
		return next, nil
	}

	title := acc.title
	if !acc.hasTitle {
		title = c.placeholder(len(acc.chapters))
	}
	return next, &Chapter{Title: title, Text: content}
}

// finish は残りのバッファを確定し、出力された章を返します。
// 見出しが一度も現れなかった場合は章を返さず、呼び出し側のフォールバックに任せます。
func (c foldConfig) finish(acc fold) []Chapter {
	if !acc.triggered {
		return nil
	}
	if len(acc.lines) > 0 {
		var chapter *Chapter
		acc, chapter = c.flush(acc)
		acc = acc.emit(chapter)
	}
	return acc.chapters
}

// emit は確定した章をアキュムレータに追加します。
func (f fold) emit(chapter *Chapter) fold {
	if chapter != nil {
		f.chapters = append(f.chapters, *chapter)
	}
	return f
}

// fallbackChapter は原稿全体を1つの章として返します。
func fallbackChapter(text string) []Chapter {
	slog.Warn("章見出しが検出されませんでした。原稿全体を1つの章として扱います。", "title", FallbackTitle)
	return []Chapter{{
		Title: FallbackTitle,
		Text:  strings.TrimSpace(CollapseBlankRuns(text)),
	}}
}
