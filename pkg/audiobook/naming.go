package audiobook

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	reUnsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)
	reUnderscores = regexp.MustCompile(`_+`)
)

// Slugify は章タイトルをファイル名に使える文字列に変換します。
// 英数字と "_" "." "-" 以外の連続は "_" 1文字になり、先頭・末尾の "." と "_" は取り除かれます。
// 何も残らない場合は "chapter" を返します。
func Slugify(title string) string {
	s := reUnsafeChars.ReplaceAllString(strings.TrimSpace(title), "_")
	s = reUnderscores.ReplaceAllString(s, "_")
	s = strings.Trim(s, "._")
	if s == "" {
		return slugPlaceholder
	}
	return s
}

// ChapterFileName は章ごとの出力ファイル名を返します。number は1始まりの章番号です。
func ChapterFileName(number int, title, ext string) string {
	return fmt.Sprintf(chapterFileFormat, number, Slugify(title), ext)
}
