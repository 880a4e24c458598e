package manuscript

// Chapter は章タイトルと本文の組です。
// Text はトリム後に空でないことが保証されます (空の原稿に対するフォールバックを除く)。
type Chapter struct {
	Title string
	Text  string
}

// SourceItem は構造化文書から抽出した段落です。
// StyleHint は段落スタイル名 (例: "Heading 1") で、見出しかどうかの判定に使われます。
type SourceItem struct {
	StyleHint string
	Text      string
}
