package manuscript

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// 3つ以上連続する改行 (2行以上の空行)
	reBlankRuns = regexp.MustCompile(`\n{3,}`)
	// 水平方向の空白の連続 (NBSP を含む)
	reHorizontalSpace = regexp.MustCompile(`[ \t\x{00A0}\x{3000}]+`)
)

// NormalizeSource は読み込んだ原稿全体を正規化します。
// BOM の除去、改行コードの統一、不正な UTF-8 の除去、NFC 正規化を行います。
func NormalizeSource(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return norm.NFC.String(s)
}

// NormalizeParagraph は段落内の空白の連続を一つのスペースにまとめ、前後をトリムします。
func NormalizeParagraph(s string) string {
	s = norm.NFC.String(strings.ToValidUTF8(s, ""))
	s = reHorizontalSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CollapseBlankRuns は3つ以上連続する改行をちょうど1行の空行に置き換えます。
func CollapseBlankRuns(s string) string {
	return reBlankRuns.ReplaceAllString(s, paragraphSeparator)
}
