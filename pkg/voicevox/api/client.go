package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shouni/go-http-kit/pkg/httpkit"
)

// wavHeaderSize は最小のWAVヘッダー (RIFF + fmt + data) のサイズです。
const wavHeaderSize = 44

// ----------------------------------------------------------------------
// クライアント構造体とコンストラクタ
// ----------------------------------------------------------------------

// Client はVOICEVOXエンジンへのAPIリクエストを処理するクライアントです。
// httpkit.Client を利用してリトライ機能を内包します。
type Client struct {
	client *httpkit.Client // リトライ機能付きHTTPクライアント
	apiURL string
}

// NewClient は新しいClientインスタンスを初期化します。
func NewClient(apiURL string, timeout time.Duration) *Client {
	return &Client{
		client: httpkit.New(timeout),
		apiURL: apiURL,
	}
}

// buildURL はベースURLとエンドポイントを結合し、エラー処理を行います。
func (c *Client) buildURL(endpoint string) (*url.URL, error) {
	u, err := url.Parse(c.apiURL)
	if err != nil {
		return nil, &ErrAPINetwork{Endpoint: endpoint, WrappedErr: fmt.Errorf("API URLのパース失敗: %w", err)}
	}

	u.Path, err = url.JoinPath(u.Path, endpoint)
	if err != nil {
		return nil, &ErrAPINetwork{Endpoint: endpoint, WrappedErr: fmt.Errorf("エンドポイント結合失敗: %w", err)}
	}

	return u, nil
}

// ----------------------------------------------------------------------
// API呼び出しロジック
// ----------------------------------------------------------------------

// AudioQuery は /audio_query APIを呼び出し、音声合成のためのクエリJSONを返します。
func (c *Client) AudioQuery(ctx context.Context, text string, styleID int) ([]byte, error) {
	const endpoint = "/audio_query"

	u, err := c.buildURL(endpoint)
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("text", text)
	q.Set("speaker", strconv.Itoa(styleID))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), nil)
	if err != nil {
		return nil, &ErrAPINetwork{Endpoint: endpoint, WrappedErr: fmt.Errorf("リクエスト構築失敗: %w", err)}
	}

	// c.client.DoRequest() がリトライ、ステータスチェック、ボディ読み取りを処理
	bodyBytes, err := c.client.DoRequest(req)
	if err != nil {
		return nil, &ErrAPINetwork{Endpoint: endpoint, WrappedErr: err}
	}

	var aqr AudioQueryResponse
	if err := json.Unmarshal(bodyBytes, &aqr); err != nil {
		return nil, &ErrInvalidJSON{Details: fmt.Sprintf("%s応答JSONのデコード", endpoint), WrappedErr: err}
	}

	return bodyBytes, nil
}

// Synthesis は /synthesis APIを呼び出し、WAV形式の音声データを返します。
func (c *Client) Synthesis(ctx context.Context, queryBody []byte, styleID int) ([]byte, error) {
	const endpoint = "/synthesis"

	u, err := c.buildURL(endpoint)
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("speaker", strconv.Itoa(styleID))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(queryBody))
	if err != nil {
		return nil, &ErrAPINetwork{Endpoint: endpoint, WrappedErr: fmt.Errorf("リクエスト構築失敗: %w", err)}
	}

	// VOICEVOX APIに必要なヘッダーを設定
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/wav")

	wavData, err := c.client.DoRequest(req)
	if err != nil {
		return nil, &ErrAPINetwork{Endpoint: endpoint, WrappedErr: err}
	}

	if len(wavData) < wavHeaderSize {
		return nil, &ErrInvalidAudio{Size: len(wavData)}
	}

	return wavData, nil
}

// Speakers は /speakers APIを呼び出し、VOICEVOXエンジンが提供する
// 全てのスピーカー情報（JSONバイトスライス）を返します。
func (c *Client) Speakers(ctx context.Context) ([]byte, error) {
	const endpoint = "/speakers"

	u, err := c.buildURL(endpoint)
	if err != nil {
		return nil, err
	}

	// FetchBytes は GET, リトライ、ステータスチェック、ボディ読み取りを全て処理
	bodyBytes, err := c.client.FetchBytes(ctx, u.String())
	if err != nil {
		return nil, &ErrAPINetwork{Endpoint: endpoint, WrappedErr: err}
	}

	return bodyBytes, nil
}

// Version は /version APIを呼び出し、エンジンのバージョン文字列を返します。
// エンジンへの疎通確認にも使用します。
func (c *Client) Version(ctx context.Context) (string, error) {
	const endpoint = "/version"

	u, err := c.buildURL(endpoint)
	if err != nil {
		return "", err
	}

	bodyBytes, err := c.client.FetchBytes(ctx, u.String())
	if err != nil {
		return "", &ErrAPINetwork{Endpoint: endpoint, WrappedErr: err}
	}

	var version string
	if err := json.Unmarshal(bodyBytes, &version); err != nil {
		return "", &ErrInvalidJSON{Details: fmt.Sprintf("%s応答JSONのデコード", endpoint), WrappedErr: err}
	}
	return version, nil
}

// ApplyScales は audio_query の JSON に話速と音量の倍率を上書きします。
// 未知のフィールドはそのまま保持します。
func ApplyScales(queryBody []byte, scales Scales) ([]byte, error) {
	var query map[string]json.RawMessage
	if err := json.Unmarshal(queryBody, &query); err != nil {
		return nil, &ErrInvalidJSON{Details: "audio_query の書き換え", WrappedErr: err}
	}

	for key, value := range map[string]float64{"speedScale": scales.Speed, "volumeScale": scales.Volume} {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, &ErrInvalidJSON{Details: key, WrappedErr: err}
		}
		query[key] = raw
	}

	out, err := json.Marshal(query)
	if err != nil {
		return nil, &ErrInvalidJSON{Details: "audio_query の書き換え", WrappedErr: err}
	}
	return out, nil
}
