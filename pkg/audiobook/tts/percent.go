package tts

import (
	"fmt"
	"strconv"
	"strings"
)

// EnsurePercent は数値または dB 表記の入力をパーセント表記に正規化します。
//
//	"-5"   -> "-5%"
//	"+3dB" -> "+3%"
//	"+3%"  -> "+3%"
func EnsurePercent(val string) string {
	s := strings.TrimSpace(val)
	if strings.HasSuffix(strings.ToLower(s), decibelSuffix) {
		s = s[:len(s)-len(decibelSuffix)]
	}
	if strings.HasSuffix(s, percentSuffix) {
		return s
	}
	return s + percentSuffix
}

// ParsePercent はパーセント文字列を数値に変換し、[min, max] の範囲を検証します。
func ParsePercent(name, val string, min, max float64) (float64, error) {
	s := strings.TrimSpace(EnsurePercent(val))
	s = strings.TrimSuffix(s, percentSuffix)

	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ErrInvalidParameter{Name: name, Value: val, Reason: "数値ではありません"}
	}
	if p < min || p > max {
		return 0, &ErrInvalidParameter{
			Name:   name,
			Value:  val,
			Reason: fmt.Sprintf("%g%%〜%+g%% の範囲で指定してください", min, max),
		}
	}
	return p, nil
}

// scaleFromPercent はパーセントを倍率に変換します ("+10%" -> 1.1)。
func scaleFromPercent(name, val string, min, max float64) (float64, error) {
	p, err := ParsePercent(name, val, min, max)
	if err != nil {
		return 0, err
	}
	return 1 + p/100, nil
}
