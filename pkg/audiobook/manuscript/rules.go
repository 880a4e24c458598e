package manuscript

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Rules は章の開始 (トリガー) を判定するための規則です。
// キーワードと見出しスタイルは制御フローに手を入れずにロケールを追加できるよう、データとして保持します。
type Rules struct {
	Keywords      []string
	HeadingStyles []string

	keywordPattern *regexp.Regexp
	headingStyles  []string // 小文字化済み
}

// rulesFile はロケール定義 YAML ファイルの構造です。
//
//	keywords: [Kapitel, Teil]
//	heading_styles: [Überschrift 1, Überschrift 2]
type rulesFile struct {
	Keywords      []string `yaml:"keywords"`
	HeadingStyles []string `yaml:"heading_styles"`
}

// NewRules はキーワードと見出しスタイルから Rules を構築します。
// 空文字列と重複 (大文字小文字を区別しない) は取り除かれます。
func NewRules(keywords, headingStyles []string) *Rules {
	r := &Rules{
		Keywords:      dedupe(keywords),
		HeadingStyles: dedupe(headingStyles),
	}

	if len(r.Keywords) > 0 {
		quoted := make([]string, len(r.Keywords))
		for i, kw := range r.Keywords {
			quoted[i] = regexp.QuoteMeta(kw)
		}
		// 行頭のキーワードの直後が文字・数字でないこと (Unicode 対応の単語境界)。
		// "Luku 3" のように後続する番号はこの境界の後ろに続く。
		r.keywordPattern = regexp.MustCompile(`(?i)^(?:` + strings.Join(quoted, "|") + `)(?:$|[^\p{L}\p{N}_])`)
	}

	for _, style := range r.HeadingStyles {
		r.headingStyles = append(r.headingStyles, strings.ToLower(style))
	}

	return r
}

// DefaultRules はデフォルトのキーワードと見出しスタイルによる Rules を返します。
func DefaultRules() *Rules {
	return NewRules(DefaultKeywords, DefaultHeadingStyles)
}

// LoadRules は YAML ファイルのキーワードと見出しスタイルをデフォルトに追加した Rules を返します。
// path が空の場合は DefaultRules を返します。
func LoadRules(fs afero.Fs, path string) (*Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, &ErrSourceUnreadable{Path: path, WrappedErr: err}
	}

	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("キーワード定義ファイル %s の解析に失敗しました: %w", path, err)
	}

	keywords := append(append([]string{}, DefaultKeywords...), f.Keywords...)
	styles := append(append([]string{}, DefaultHeadingStyles...), f.HeadingStyles...)
	return NewRules(keywords, styles), nil
}

// IsKeywordHeading は行が章キーワードで始まるかどうかを判定します。
// 行頭の空白は許容しません。
func (r *Rules) IsKeywordHeading(line string) bool {
	if r.keywordPattern == nil {
		return false
	}
	return r.keywordPattern.MatchString(line)
}

// IsHeadingStyle は段落スタイル名が見出しスタイルのいずれかを含むかどうかを判定します。
func (r *Rules) IsHeadingStyle(style string) bool {
	if style == "" {
		return false
	}
	lower := strings.ToLower(style)
	for _, h := range r.headingStyles {
		if strings.Contains(lower, h) {
			return true
		}
	}
	return false
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}
