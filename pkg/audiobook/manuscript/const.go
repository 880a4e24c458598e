package manuscript

// ----------------------------------------------------------------------
// 章タイトルのプレースホルダー
// ----------------------------------------------------------------------

const (
	// UntitledTitle は構造化文書で最初の見出しより前にある本文の章タイトルです。
	UntitledTitle = "Untitled"
	// FallbackTitle は章が一つも検出されなかった場合の章タイトルです。
	FallbackTitle = "Book"
	// plainTitleFormat はプレーンテキストで見出しのない章に付ける連番タイトルの書式です。
	plainTitleFormat = "Chapter %d"
)

// ----------------------------------------------------------------------
// 段落の結合
// ----------------------------------------------------------------------

const (
	paragraphSeparator = "\n\n"
	lineSeparator      = "\n"
)

// ----------------------------------------------------------------------
// 見出し判定のデフォルト
// ----------------------------------------------------------------------

// DefaultKeywords は章の開始とみなす行頭キーワードです (フィンランド語と英語)。
var DefaultKeywords = []string{"Luku", "Chapter", "Osa"}

// DefaultHeadingStyles は章の開始とみなす段落スタイル名です。
// Word の英語版と、ローカライズされたフィンランド語版のスタイル名を含みます。
var DefaultHeadingStyles = []string{"Heading 1", "Heading 2", "Otsikko 1", "Otsikko 2"}

// SourceExtDocx は構造化文書として扱う拡張子です。
const SourceExtDocx = ".docx"
