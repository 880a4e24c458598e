package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/shouni/go-audiobook/pkg/audiobook/tts"
)

// Load は設定を読み込み、検証して返します。
// envFile が空でなければ .env ファイルを読み込みます (存在しない場合は無視します)。
// overrides はコマンドラインで明示的に指定された値で、最も優先されます。
func Load(envFile string, overrides map[string]any) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%s の読み込みに失敗しました: %w", envFile, err)
			}
			slog.Debug(".env ファイルが見つからないためスキップします。", "path", envFile)
		}
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("デフォルト設定の読み込みに失敗しました: %w", err)
	}

	if v := os.Getenv(LegacyAPIURLEnv); v != "" {
		if err := k.Set("api_url", v); err != nil {
			return nil, fmt.Errorf("%s の適用に失敗しました: %w", LegacyAPIURLEnv, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("環境変数の読み込みに失敗しました: %w", err)
	}

	for key, value := range overrides {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("フラグ %s の適用に失敗しました: %w", key, err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("設定の変換に失敗しました: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate は設定値を検証します。
func Validate(cfg *Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("percent", validatePercent); err != nil {
		return fmt.Errorf("検証ルールの登録に失敗しました: %w", err)
	}
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("設定の検証に失敗しました: %w", err)
	}
	return nil
}

// validatePercent は "-5"、"+3dB"、"10%" のような数値として解釈できるかを検証します。
// 範囲の検証は合成時に行います。
func validatePercent(fl validator.FieldLevel) bool {
	_, err := tts.ParsePercent(fl.FieldName(), fl.Field().String(), math.Inf(-1), math.Inf(1))
	return err == nil
}
