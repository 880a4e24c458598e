package audio

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	stdout []byte
	stderr string
	err    error

	name  string
	args  []string
	stdin []byte
}

func (f *fakeRunner) Run(_ context.Context, stdin []byte, name string, args ...string) ([]byte, string, error) {
	f.stdin = stdin
	f.name = name
	f.args = args
	return f.stdout, f.stderr, f.err
}

func newTestTrack(t *testing.T) *Track {
	t.Helper()
	track := NewTrack()
	require.NoError(t, track.AppendPCM(testFormat, []byte{1, 2, 3, 4}))
	return track
}

func TestFFmpegEncoder(t *testing.T) {
	t.Run("Should pipe the WAV to ffmpeg with codec, bitrate and tags", func(t *testing.T) {
		runner := &fakeRunner{stdout: []byte("ID3-mp3-bytes")}
		enc, err := NewFFmpegEncoder("/usr/bin/ffmpeg", "mp3", "192k", WithCommandRunner(runner))
		require.NoError(t, err)
		assert.Equal(t, "mp3", enc.Ext())

		out, err := enc.Encode(context.Background(), newTestTrack(t), Tags{Album: "Audiobook", Artist: "Unknown Author", Title: "Luku 1"})
		require.NoError(t, err)
		assert.Equal(t, []byte("ID3-mp3-bytes"), out)

		assert.Equal(t, "/usr/bin/ffmpeg", runner.name)
		assert.Equal(t, []string{
			"-hide_banner", "-loglevel", "error",
			"-f", "wav", "-i", "pipe:0",
			"-vn", "-codec:a", "libmp3lame",
			"-b:a", "192k",
			"-metadata", "album=Audiobook",
			"-metadata", "artist=Unknown Author",
			"-metadata", "title=Luku 1",
			"-id3v2_version", "3",
			"-f", "mp3", "pipe:1",
		}, runner.args)

		_, pcm, err := DecodeWAV(runner.stdin, -1)
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3, 4}, pcm)
	})

	t.Run("Should omit bitrate for flac and empty tags", func(t *testing.T) {
		runner := &fakeRunner{stdout: []byte("fLaC")}
		enc, err := NewFFmpegEncoder("", "flac", "192k", WithCommandRunner(runner))
		require.NoError(t, err)

		_, err = enc.Encode(context.Background(), newTestTrack(t), Tags{})
		require.NoError(t, err)
		assert.Equal(t, "ffmpeg", runner.name)
		assert.NotContains(t, runner.args, "-b:a")
		assert.NotContains(t, runner.args, "-metadata")
	})

	t.Run("Should wrap ffmpeg failures with stderr", func(t *testing.T) {
		runner := &fakeRunner{stderr: "Unknown encoder 'libmp3lame'", err: errors.New("exit status 1")}
		enc, err := NewFFmpegEncoder("ffmpeg", "mp3", "192k", WithCommandRunner(runner))
		require.NoError(t, err)

		_, err = enc.Encode(context.Background(), newTestTrack(t), Tags{})
		var target *ErrEncode
		require.ErrorAs(t, err, &target)
		assert.Equal(t, "mp3", target.Format)
		assert.Contains(t, target.Stderr, "Unknown encoder")
	})

	t.Run("Should fail on empty output", func(t *testing.T) {
		enc, err := NewFFmpegEncoder("ffmpeg", "ogg", "", WithCommandRunner(&fakeRunner{}))
		require.NoError(t, err)

		_, err = enc.Encode(context.Background(), newTestTrack(t), Tags{})
		var target *ErrEncode
		assert.ErrorAs(t, err, &target)
	})

	t.Run("Should reject unsupported formats", func(t *testing.T) {
		_, err := NewFFmpegEncoder("ffmpeg", "aac", "192k")
		assert.Error(t, err)
		assert.False(t, SupportedFFmpegFormats("wav"))
		assert.True(t, SupportedFFmpegFormats("opus"))
	})
}

func TestExportFile(t *testing.T) {
	t.Run("Should write the encoded track", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, ExportFile(context.Background(), fs, WAVEncoder{}, newTestTrack(t), "/out/book.wav", Tags{Title: "book"}))

		data, err := afero.ReadFile(fs, "/out/book.wav")
		require.NoError(t, err)
		_, pcm, err := DecodeWAV(data, -1)
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3, 4}, pcm)
	})

	t.Run("Should fail to export an empty track", func(t *testing.T) {
		err := ExportFile(context.Background(), afero.NewMemMapFs(), WAVEncoder{}, NewTrack(), "/out/x.wav", Tags{})
		var target *ErrNoAudioData
		assert.ErrorAs(t, err, &target)
	})

	t.Run("Should report write failures", func(t *testing.T) {
		fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
		err := ExportFile(context.Background(), fs, WAVEncoder{}, newTestTrack(t), "/out/x.wav", Tags{})
		var target *ErrExport
		require.ErrorAs(t, err, &target)
		assert.Equal(t, "/out/x.wav", target.Path)
	})
}
