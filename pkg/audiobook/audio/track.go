package audio

import (
	"time"
)

// Track はメモリ上で連結していく PCM 音声トラックです。
// フォーマットは最初に追加された音声で確定し、以降は同じフォーマットの音声のみ追加できます。
type Track struct {
	format    Format
	hasFormat bool
	pcm       []byte
}

// NewTrack は空のトラックを生成します。
func NewTrack() *Track {
	return &Track{}
}

// Format はトラックのフォーマットを返します。まだ音声がない場合は false を返します。
func (t *Track) Format() (Format, bool) {
	return t.format, t.hasFormat
}

// PCM はトラックの PCM データを返します。
func (t *Track) PCM() []byte {
	return t.pcm
}

// Empty はトラックに音声が1つも追加されていないかどうかを返します。
func (t *Track) Empty() bool {
	return !t.hasFormat
}

// Duration はトラックの再生時間を返します。
func (t *Track) Duration() time.Duration {
	if !t.hasFormat || t.format.SampleRate == 0 || t.format.BlockAlign == 0 {
		return 0
	}
	frames := int64(len(t.pcm) / int(t.format.BlockAlign))
	return time.Duration(frames) * time.Second / time.Duration(t.format.SampleRate)
}

// ----------------------------------------------------------------------
// 連結
// ----------------------------------------------------------------------

// AppendWAV はWAVファイルのオーディオデータをトラックの末尾に追加します。
// index はエラーメッセージで使用するセグメント番号です。
func (t *Track) AppendWAV(wavBytes []byte, index int) error {
	format, pcm, err := DecodeWAV(wavBytes, index)
	if err != nil {
		return err
	}
	return t.AppendPCM(format, pcm)
}

// AppendPCM は指定フォーマットの PCM データをトラックの末尾に追加します。
func (t *Track) AppendPCM(format Format, pcm []byte) error {
	if !t.hasFormat {
		t.format = format
		t.hasFormat = true
	} else if !t.format.compatible(format) {
		return &ErrFormatMismatch{Want: t.format, Got: format}
	}
	t.pcm = append(t.pcm, pcm...)
	return nil
}

// AppendTrack は別のトラックをこのトラックの末尾に追加します。空のトラックは無視されます。
func (t *Track) AppendTrack(other *Track) error {
	if other == nil || !other.hasFormat {
		return nil
	}
	return t.AppendPCM(other.format, other.pcm)
}

// AppendSilence は d の長さの無音をトラックの末尾に追加します。
// 無音のフォーマットはトラックのフォーマットに従うため、先に音声が追加されている必要があります。
func (t *Track) AppendSilence(d time.Duration) error {
	if !t.hasFormat {
		return &ErrNoAudioData{}
	}
	if d <= 0 {
		return nil
	}
	t.pcm = append(t.pcm, Silence(t.format, d)...)
	return nil
}

// WAV はトラック全体をタグ付きのWAVファイルとして返します。
func (t *Track) WAV(tags Tags) ([]byte, error) {
	if !t.hasFormat {
		return nil, &ErrNoAudioData{}
	}
	return EncodeWAV(t.format, t.pcm, tags)
}

// Silence は format で d の長さの無音 PCM データを生成します。
// 長さはフレーム (BlockAlign) 単位に切り捨てられます。
func Silence(format Format, d time.Duration) []byte {
	frames := int64(format.SampleRate) * d.Milliseconds() / 1000
	if frames <= 0 || format.BlockAlign == 0 {
		return nil
	}

	pcm := make([]byte, frames*int64(format.BlockAlign))
	if format.BitsPerSample == 8 {
		// 8bit PCM は符号なしのため 0x80 が無音
		for i := range pcm {
			pcm[i] = 0x80
		}
	}
	return pcm
}
