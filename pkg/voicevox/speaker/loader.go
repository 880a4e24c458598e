package speaker

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/shouni/go-audiobook/pkg/voicevox/api"
)

// 旧形式のタグ指定: [話者名][スタイル名]
var reToolTag = regexp.MustCompile(`^\[(.+?)\]\s*(?:\[(.+?)\])?$`)

// Catalog はVOICEVOXから動的に取得した全話者・スタイル情報です。
type Catalog struct {
	voices       []Voice
	byKey        map[string]int // "話者名/スタイル名" -> Style ID
	defaultStyle map[string]int // 話者名 -> デフォルトスタイルの Style ID
	byID         map[int]Voice
}

// ----------------------------------------------------------------------
// ロードロジック
// ----------------------------------------------------------------------

// LoadCatalog は /speakers エンドポイントからデータを取得し、Catalog を構築します。
func LoadCatalog(ctx context.Context, client SpeakerClient) (*Catalog, error) {
	bodyBytes, err := client.Speakers(ctx)
	if err != nil {
		// Speakers 内でErrAPINetworkなどがラップされているため、そのまま返す
		return nil, err
	}

	var vvSpeakers []VVSpeaker
	if err := json.Unmarshal(bodyBytes, &vvSpeakers); err != nil {
		return nil, &api.ErrInvalidJSON{Details: "/speakers 応答", WrappedErr: err}
	}

	catalog := NewCatalog(vvSpeakers)
	if len(catalog.voices) == 0 {
		return nil, &ErrMissingRequiredField{Field: "styles", Context: "/speakers 応答"}
	}

	slog.InfoContext(ctx, "VOICEVOXスタイルデータが正常にロードされました", "styles_count", len(catalog.voices))
	return catalog, nil
}

// NewCatalog は /speakers の応答から Catalog を構築します。
// 各話者のデフォルトスタイルは DefaultStyleName、なければ最初のスタイルです。
func NewCatalog(speakers []VVSpeaker) *Catalog {
	c := &Catalog{
		byKey:        make(map[string]int),
		defaultStyle: make(map[string]int),
		byID:         make(map[int]Voice),
	}

	for _, spk := range speakers {
		for i, style := range spk.Styles {
			v := Voice{Speaker: spk.Name, Style: style.Name, ID: style.ID}
			c.voices = append(c.voices, v)
			c.byKey[v.Key()] = v.ID
			c.byID[v.ID] = v

			if i == 0 || style.Name == DefaultStyleName {
				c.defaultStyle[spk.Name] = v.ID
			}
		}
	}
	return c
}

// Voices はエンジンが提供する全ての声を応答順に返します。
func (c *Catalog) Voices() []Voice {
	return c.voices
}

// Resolve は声の指定からStyle IDを検索します。
// 指定は "話者名/スタイル名"、"話者名" (デフォルトスタイル)、"[話者名][スタイル名]"、数値のStyle IDのいずれかです。
func (c *Catalog) Resolve(voice string) (int, error) {
	voice = strings.TrimSpace(voice)

	if id, err := strconv.Atoi(voice); err == nil {
		if _, ok := c.byID[id]; ok {
			return id, nil
		}
		return 0, &ErrUnknownVoice{Voice: voice}
	}

	name, style := voice, ""
	if m := reToolTag.FindStringSubmatch(voice); m != nil {
		name, style = m[1], m[2]
	} else if before, after, found := strings.Cut(voice, VoiceSeparator); found {
		name, style = strings.TrimSpace(before), strings.TrimSpace(after)
	}

	if style != "" {
		if id, ok := c.byKey[name+VoiceSeparator+style]; ok {
			return id, nil
		}
		return 0, &ErrUnknownVoice{Voice: voice}
	}

	if id, ok := c.defaultStyle[name]; ok {
		slog.Debug("スタイルの指定がないためデフォルトスタイルを使用します。", "speaker", name, "style_id", id)
		return id, nil
	}
	return 0, &ErrUnknownVoice{Voice: voice}
}
