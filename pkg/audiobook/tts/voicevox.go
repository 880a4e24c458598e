package tts

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/time/rate"

	"github.com/shouni/go-audiobook/pkg/voicevox/api"
)

// VoicevoxSynthesizer は VOICEVOX エンジンで音声合成を行う Synthesizer です。
type VoicevoxSynthesizer struct {
	client   AudioQueryClient
	voices   VoiceResolver
	limiter  *rate.Limiter
	cacheMu  sync.RWMutex
	styleIDs map[string]int
}

// VoicevoxOption は VoicevoxSynthesizer の設定を変更します。
type VoicevoxOption func(*VoicevoxSynthesizer)

// WithRequestsPerSecond は1秒あたりの合成リクエスト数の上限を設定します。0 以下の場合は制限しません。
func WithRequestsPerSecond(rps float64) VoicevoxOption {
	return func(s *VoicevoxSynthesizer) {
		if rps > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// NewVoicevoxSynthesizer は VoicevoxSynthesizer を生成します。
func NewVoicevoxSynthesizer(client AudioQueryClient, voices VoiceResolver, opts ...VoicevoxOption) *VoicevoxSynthesizer {
	s := &VoicevoxSynthesizer{
		client:   client,
		voices:   voices,
		styleIDs: make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize は audio_query と synthesis を順に呼び出し、WAVデータを返します。
func (s *VoicevoxSynthesizer) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	styleID, err := s.styleID(req.Voice)
	if err != nil {
		return nil, err
	}

	speed, err := scaleFromPercent("rate", req.Rate, MinRatePercent, MaxRatePercent)
	if err != nil {
		return nil, err
	}
	volume, err := scaleFromPercent("volume", req.Volume, MinVolumePercent, MaxVolumePercent)
	if err != nil {
		return nil, err
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("合成リクエストの待機が中断されました: %w", err)
		}
	}

	queryBody, err := s.client.AudioQuery(ctx, req.Text, styleID)
	if err != nil {
		return nil, fmt.Errorf("オーディオクエリ失敗: %w", err)
	}

	queryBody, err = api.ApplyScales(queryBody, api.Scales{Speed: speed, Volume: volume})
	if err != nil {
		return nil, err
	}

	wavData, err := s.client.Synthesis(ctx, queryBody, styleID)
	if err != nil {
		return nil, fmt.Errorf("音声合成失敗: %w", err)
	}

	slog.DebugContext(ctx, "チャンクの音声合成が完了しました。",
		"style_id", styleID, "chars", len([]rune(req.Text)), "bytes", len(wavData))
	return wavData, nil
}

// styleID は声の指定から Style ID を検索し、キャッシュを使用/更新します。
func (s *VoicevoxSynthesizer) styleID(voice string) (int, error) {
	s.cacheMu.RLock()
	if id, ok := s.styleIDs[voice]; ok {
		s.cacheMu.RUnlock()
		return id, nil
	}
	s.cacheMu.RUnlock()

	id, err := s.voices.Resolve(voice)
	if err != nil {
		return 0, err
	}

	s.cacheMu.Lock()
	s.styleIDs[voice] = id
	s.cacheMu.Unlock()
	return id, nil
}
