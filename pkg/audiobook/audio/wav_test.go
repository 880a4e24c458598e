package audio

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// VOICEVOX の出力と同じ 24kHz / モノラル / 16bit
var testFormat = Format{
	AudioFormat:   FormatPCM,
	Channels:      1,
	SampleRate:    24000,
	ByteRate:      48000,
	BlockAlign:    2,
	BitsPerSample: 16,
}

func mustEncodeWAV(t *testing.T, pcm []byte, tags Tags) []byte {
	t.Helper()
	wav, err := EncodeWAV(testFormat, pcm, tags)
	require.NoError(t, err)
	return wav
}

func TestRiffChunkSize(t *testing.T) {
	headers := WavTotalHeaderSize - RiffChunkIDSize - RiffChunkSizeSize

	t.Run("Should count headers, tags and padding", func(t *testing.T) {
		size, err := riffChunkSize(3, 10)
		require.NoError(t, err)
		assert.Equal(t, uint32(headers+10+3+1), size)
	})

	t.Run("Should accept the largest size that fits in 32 bits", func(t *testing.T) {
		size, err := riffChunkSize(math.MaxUint32-headers-1, 0)
		require.NoError(t, err)
		assert.Equal(t, uint32(math.MaxUint32-1), size)
	})

	t.Run("Should reject audio larger than a WAV file can describe", func(t *testing.T) {
		// 24kHz / 16bit / モノラルで約25時間分
		_, err := riffChunkSize(math.MaxUint32+2, 0)
		var target *ErrEncode
		require.ErrorAs(t, err, &target)
		assert.Equal(t, "wav", target.Format)
	})

	t.Run("Should reject a size that overflows only after adding headers", func(t *testing.T) {
		_, err := riffChunkSize(math.MaxUint32-headers+1, 0)
		var target *ErrEncode
		require.ErrorAs(t, err, &target)
	})
}

func TestEncodeDecodeWAV(t *testing.T) {
	pcm := []byte{1, 2, 3, 4, 5, 6}

	t.Run("Should round trip format and PCM data", func(t *testing.T) {
		wav := mustEncodeWAV(t, pcm, Tags{})
		assert.Len(t, wav, WavTotalHeaderSize+len(pcm))

		format, data, err := DecodeWAV(wav, 0)
		require.NoError(t, err)
		assert.Equal(t, testFormat, format)
		assert.Equal(t, pcm, data)
	})

	t.Run("Should skip the INFO chunk written for tags", func(t *testing.T) {
		wav := mustEncodeWAV(t, pcm, Tags{Album: "Audiobook", Artist: "Unknown Author", Title: "Luku 1"})
		assert.Contains(t, string(wav), "LIST")
		assert.Contains(t, string(wav), "INAM")
		assert.Contains(t, string(wav), "Luku 1")

		format, data, err := DecodeWAV(wav, 0)
		require.NoError(t, err)
		assert.Equal(t, testFormat, format)
		assert.Equal(t, pcm, data)

		riffSize := binary.LittleEndian.Uint32(wav[4:8])
		assert.Equal(t, uint32(len(wav)-8), riffSize)
	})

	t.Run("Should pad odd-length data to an even size", func(t *testing.T) {
		wav := mustEncodeWAV(t, []byte{9, 9, 9}, Tags{})
		assert.Equal(t, 0, len(wav)%2)

		_, data, err := DecodeWAV(wav, 0)
		require.NoError(t, err)
		assert.Equal(t, []byte{9, 9, 9}, data)
	})
}

func TestDecodeWAV_Invalid(t *testing.T) {
	valid := mustEncodeWAV(t, []byte{0, 0, 0, 0}, Tags{})

	nonPCM := append([]byte(nil), valid...)
	binary.LittleEndian.PutUint16(nonPCM[20:22], 3)

	truncated := append([]byte(nil), valid[:len(valid)-2]...)

	noData := append([]byte(nil), valid[:WavRiffHeaderSize+ChunkHeaderSize+FmtChunkSize]...)

	tests := []struct {
		name string
		data []byte
	}{
		{"Should reject data shorter than the RIFF header", []byte("RIFF")},
		{"Should reject a missing RIFF identifier", append([]byte("RIFX"), valid[4:]...)},
		{"Should reject non-PCM audio", nonPCM},
		{"Should reject a chunk longer than the file", truncated},
		{"Should reject a file without a data chunk", noData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeWAV(tt.data, 7)
			var target *ErrInvalidWAVHeader
			require.ErrorAs(t, err, &target)
			assert.Equal(t, 7, target.Index)
		})
	}
}
