package audio

// ----------------------------------------------------------------------
// WAV ファイル定数 (動的チャンク探索ベース)
// ----------------------------------------------------------------------

const (
	// RIFF 構造の必須サイズ定数
	RiffChunkIDSize   = 4 // "RIFF" チャンクIDのサイズ
	RiffChunkSizeSize = 4 // ファイルサイズフィールドのサイズ
	WaveIDSize        = 4 // "WAVE" 識別子のサイズ

	// チャンクヘッダー (チャンクID 4 + サイズ 4)
	ChunkIDSize     = 4
	ChunkSizeSize   = 4
	ChunkHeaderSize = ChunkIDSize + ChunkSizeSize

	// fmt チャンクの PCM 部分のサイズ
	FmtChunkSize = 16
)

const (
	// 必須複合サイズ (ロジックで利用)
	WavRiffHeaderSize  = RiffChunkIDSize + RiffChunkSizeSize + WaveIDSize // RIFFヘッダーの合計サイズ (12バイト)
	WavTotalHeaderSize = WavRiffHeaderSize + ChunkHeaderSize + FmtChunkSize + ChunkHeaderSize
)

const (
	// WAVEFORMAT の形式コード
	FormatPCM uint16 = 1
)

// LIST/INFO チャンクのタグID
const (
	infoTitle  = "INAM"
	infoArtist = "IART"
	infoAlbum  = "IPRD"
)
