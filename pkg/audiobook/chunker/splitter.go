package chunker

import (
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Splitter は章の本文を音声合成エンジンに送れる大きさのチャンクに分割します。
// 段落、文の境界を優先し、1文が上限を超える場合のみ文の途中で分割します。
type Splitter struct {
	maxChars     int
	cjkTerminals bool
}

// Option は Splitter の設定を変更します。
type Option func(*Splitter)

// WithMaxChars はチャンクの最大文字数 (Unicode コードポイント数) を設定します。
// 0 以下の値は無視されます。
func WithMaxChars(n int) Option {
	return func(s *Splitter) {
		if n > 0 {
			s.maxChars = n
		}
	}
}

// WithCJKTerminals は和文の句点 (。！？) を後続の空白なしで文末とみなすかどうかを設定します。
// 無効の場合、文末は半角の終端記号と空白の組み合わせのみで判定されます。
func WithCJKTerminals(enabled bool) Option {
	return func(s *Splitter) {
		s.cjkTerminals = enabled
	}
}

// New は Splitter を生成します。
func New(opts ...Option) *Splitter {
	s := &Splitter{maxChars: DefaultMaxChars}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxChars はチャンクの最大文字数を返します。
func (s *Splitter) MaxChars() int {
	return s.maxChars
}

// Split は maxChars 文字の上限で text を分割する簡易関数です。
func Split(text string, maxChars int) []string {
	return New(WithMaxChars(maxChars)).Split(text)
}

// ----------------------------------------------------------------------
// 公開ロジック
// ----------------------------------------------------------------------

// Split は text を空行区切りの段落ごとにチャンクへ分割します。
// 戻り値が空になることはなく、分割結果がない場合は text をそのまま1チャンクとして返します。
func (s *Splitter) Split(text string) []string {
	var parts []string

	for _, para := range strings.Split(text, paragraphSeparator) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if utf8.RuneCountInString(para) <= s.maxChars {
			parts = append(parts, para)
			continue
		}
		parts = append(parts, s.splitParagraph(para)...)
	}

	if len(parts) == 0 {
		return []string{text}
	}
	return parts
}

// splitParagraph は上限を超える段落を文単位で貪欲にまとめます。
func (s *Splitter) splitParagraph(para string) []string {
	var (
		parts  []string
		buf    strings.Builder
		bufLen int
	)

	for _, sentence := range s.Sentences(para) {
		n := utf8.RuneCountInString(sentence)

		// 結合用のスペース1文字を含めて上限内なら追記する
		if bufLen+1+n <= s.maxChars {
			if buf.Len() > 0 {
				buf.WriteByte(' ')
				bufLen++
			}
			buf.WriteString(sentence)
			bufLen += n
			continue
		}

		if buf.Len() > 0 {
			parts = append(parts, buf.String())
		}
		buf.Reset()
		bufLen = 0

		if n <= s.maxChars {
			buf.WriteString(sentence)
			bufLen = n
			continue
		}

		slog.Warn("1文が最大文字数を超えたため、文の途中で強制的に分割します。",
			"max_chars", s.maxChars, "sentence_chars", n)
		parts = append(parts, hardSplit(sentence, s.maxChars)...)
	}

	if buf.Len() > 0 {
		parts = append(parts, buf.String())
	}
	return parts
}

// ----------------------------------------------------------------------
// 文の分割
// ----------------------------------------------------------------------

// SplitSentences は文末記号 (. ! ? …) の直後にある空白で文を区切ります。空白は取り除かれます。
func SplitSentences(text string) []string {
	return splitSentences(text, false)
}

// Sentences は Splitter の設定に従って text を文に区切ります。
// WithCJKTerminals が有効な場合、和文の句点 (。！？) も文末とみなします。
func (s *Splitter) Sentences(text string) []string {
	return splitSentences(text, s.cjkTerminals)
}

func splitSentences(text string, cjk bool) []string {
	var sentences []string
	start := 0

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		end := i + size

		switch {
		case isTerminal(r):
			next, _ := utf8.DecodeRuneInString(text[end:])
			if end >= len(text) || !unicode.IsSpace(next) {
				i = end
				continue
			}
		case cjk && isCJKTerminal(r):
			end = skipClosers(text, end)
		default:
			i = end
			continue
		}

		resume := skipSpace(text, end)
		if end < len(text) {
			if sentence := text[start:end]; sentence != "" {
				sentences = append(sentences, sentence)
			}
			start = resume
		}
		i = resume
	}

	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '…'
}

func isCJKTerminal(r rune) bool {
	return r == '。' || r == '！' || r == '？'
}

// skipClosers は和文の句点の直後に続く閉じ括弧を文に含めます。
func skipClosers(text string, i int) int {
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !strings.ContainsRune("」』）〕】\")", r) {
			break
		}
		i += size
	}
	return i
}

func skipSpace(text string, i int) int {
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}

// hardSplit は text をちょうど maxChars 文字ずつに分割します。最後の断片のみ短くなり得ます。
func hardSplit(text string, maxChars int) []string {
	runes := []rune(text)
	slices := make([]string, 0, len(runes)/maxChars+1)
	for i := 0; i < len(runes); i += maxChars {
		end := i + maxChars
		if end > len(runes) {
			end = len(runes)
		}
		slices = append(slices, string(runes[i:end]))
	}
	return slices
}
