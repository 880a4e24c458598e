package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Format は PCM 音声のフォーマット情報 (WAV の fmt チャンク) です。
type Format struct {
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

func (f Format) String() string {
	return fmt.Sprintf("%dHz/%dch/%dbit", f.SampleRate, f.Channels, f.BitsPerSample)
}

// compatible は2つのフォーマットの PCM データをそのまま連結できるかどうかを返します。
func (f Format) compatible(o Format) bool {
	return f.AudioFormat == o.AudioFormat &&
		f.Channels == o.Channels &&
		f.SampleRate == o.SampleRate &&
		f.BitsPerSample == o.BitsPerSample
}

// ----------------------------------------------------------------------
// 公開ロジック
// ----------------------------------------------------------------------

// DecodeWAV はWAVファイルバイトスライスからフォーマット情報とオーディオデータ部分を抽出します。
// fmt / data チャンクを動的に探索し、LIST などのメタデータチャンクは読み飛ばします。
// index はエラーメッセージで使用するセグメント番号です (不明な場合は -1)。
func DecodeWAV(wavBytes []byte, index int) (Format, []byte, error) {
	if len(wavBytes) < WavRiffHeaderSize {
		return Format{}, nil, &ErrInvalidWAVHeader{
			Index:   index,
			Details: fmt.Sprintf("WAVファイルサイズが短すぎます (RIFFヘッダー不足: %dバイト)", len(wavBytes)),
		}
	}
	if string(wavBytes[0:4]) != "RIFF" || string(wavBytes[8:12]) != "WAVE" {
		return Format{}, nil, &ErrInvalidWAVHeader{Index: index, Details: "RIFF/WAVE 識別子がありません"}
	}

	var (
		format    Format
		audioData []byte
		fmtFound  bool
		dataFound bool
	)

	offset := WavRiffHeaderSize
	for offset+ChunkHeaderSize <= len(wavBytes) && !(fmtFound && dataFound) {
		chunkID := string(wavBytes[offset : offset+ChunkIDSize])
		chunkSize := int(binary.LittleEndian.Uint32(wavBytes[offset+ChunkIDSize : offset+ChunkHeaderSize]))
		bodyStart := offset + ChunkHeaderSize
		bodyEnd := bodyStart + chunkSize

		if bodyEnd > len(wavBytes) || bodyEnd < bodyStart {
			return Format{}, nil, &ErrInvalidWAVHeader{
				Index:   index,
				Details: fmt.Sprintf("%s チャンクのデータ長がファイルサイズを超過しています", chunkID),
			}
		}

		switch chunkID {
		case "fmt ":
			if chunkSize < FmtChunkSize {
				return Format{}, nil, &ErrInvalidWAVHeader{Index: index, Details: "fmt チャンクが短すぎます"}
			}
			body := wavBytes[bodyStart:bodyEnd]
			format = Format{
				AudioFormat:   binary.LittleEndian.Uint16(body[0:2]),
				Channels:      binary.LittleEndian.Uint16(body[2:4]),
				SampleRate:    binary.LittleEndian.Uint32(body[4:8]),
				ByteRate:      binary.LittleEndian.Uint32(body[8:12]),
				BlockAlign:    binary.LittleEndian.Uint16(body[12:14]),
				BitsPerSample: binary.LittleEndian.Uint16(body[14:16]),
			}
			fmtFound = true
		case "data":
			audioData = wavBytes[bodyStart:bodyEnd]
			dataFound = true
		}

		// 次のチャンクヘッダーへ (奇数長のチャンクはパディングバイトを考慮)
		offset = bodyEnd
		if chunkSize%2 != 0 {
			offset++
		}
	}

	if !fmtFound {
		return Format{}, nil, &ErrInvalidWAVHeader{Index: index, Details: "WAVファイル内に 'fmt ' チャンクが見つかりませんでした"}
	}
	if !dataFound {
		return Format{}, nil, &ErrInvalidWAVHeader{Index: index, Details: "WAVファイル内に 'data' チャンクが見つかりませんでした"}
	}
	if format.AudioFormat != FormatPCM {
		return Format{}, nil, &ErrInvalidWAVHeader{Index: index, Details: fmt.Sprintf("未対応の形式コードです: %d", format.AudioFormat)}
	}
	if format.BlockAlign == 0 {
		return Format{}, nil, &ErrInvalidWAVHeader{Index: index, Details: "BlockAlign が 0 です"}
	}

	return format, audioData, nil
}

// EncodeWAV はフォーマット情報と PCM データから単一のWAVファイルを構築します。
// tags の空でない値は LIST/INFO チャンクとして書き込まれます。
// サイズが RIFF の 32bit フィールドに収まらない場合は *ErrEncode を返します。
func EncodeWAV(format Format, pcm []byte, tags Tags) ([]byte, error) {
	info := buildInfoChunk(tags)

	riffSize, err := riffChunkSize(len(pcm), len(info))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(int(riffSize) + RiffChunkIDSize + RiffChunkSizeSize)

	buf.WriteString("RIFF")
	writeUint32(&buf, riffSize)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	writeUint32(&buf, FmtChunkSize)
	writeUint16(&buf, format.AudioFormat)
	writeUint16(&buf, format.Channels)
	writeUint32(&buf, format.SampleRate)
	writeUint32(&buf, format.ByteRate)
	writeUint16(&buf, format.BlockAlign)
	writeUint16(&buf, format.BitsPerSample)

	buf.Write(info)

	buf.WriteString("data")
	writeUint32(&buf, uint32(len(pcm)))
	buf.Write(pcm)
	if len(pcm)%2 != 0 {
		buf.WriteByte(0)
	}

	return buf.Bytes(), nil
}

// riffChunkSize は RIFF チャンクサイズ (ファイル全体のサイズ - 8) を計算します。
func riffChunkSize(pcmLen, infoLen int) (uint32, error) {
	size := int64(WaveIDSize+ChunkHeaderSize+FmtChunkSize+ChunkHeaderSize) + int64(infoLen) + int64(pcmLen)
	if pcmLen%2 != 0 {
		size++
	}
	if size > math.MaxUint32 {
		return 0, &ErrEncode{
			Format:     "wav",
			WrappedErr: fmt.Errorf("音声データ %d バイトがWAVの上限 (4GiB) を超えています", pcmLen),
		}
	}
	return uint32(size), nil
}

// ----------------------------------------------------------------------
// 内部ヘルパー関数
// ----------------------------------------------------------------------

// buildInfoChunk はタグから LIST/INFO チャンクを構築します。タグがすべて空の場合は nil を返します。
func buildInfoChunk(tags Tags) []byte {
	entries := []struct{ id, value string }{
		{infoTitle, tags.Title},
		{infoArtist, tags.Artist},
		{infoAlbum, tags.Album},
	}

	var body bytes.Buffer
	for _, e := range entries {
		if e.value == "" {
			continue
		}
		// 値は NUL 終端し、偶数長にパディングする
		value := append([]byte(e.value), 0)
		body.WriteString(e.id)
		writeUint32(&body, uint32(len(value)))
		body.Write(value)
		if len(value)%2 != 0 {
			body.WriteByte(0)
		}
	}
	if body.Len() == 0 {
		return nil
	}

	var chunk bytes.Buffer
	chunk.WriteString("LIST")
	writeUint32(&chunk, uint32(WaveIDSize+body.Len()))
	chunk.WriteString("INFO")
	chunk.Write(body.Bytes())
	return chunk.Bytes()
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}
