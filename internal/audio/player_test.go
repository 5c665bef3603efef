package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetVolume_Clamps(t *testing.T) {
	p := NewPlayer(nil)
	assert.Equal(t, 1.0, p.Volume())

	p.SetVolume(0.4)
	assert.Equal(t, 0.4, p.Volume())
	p.SetVolume(3)
	assert.Equal(t, 1.0, p.Volume())
	p.SetVolume(-1)
	assert.Equal(t, 0.0, p.Volume())
}

func TestVolumeToExponent(t *testing.T) {
	assert.InDelta(t, 0, volumeToExponent(1), 1e-9)
	assert.InDelta(t, -1, volumeToExponent(0.5), 1e-9)
	assert.InDelta(t, -2, volumeToExponent(0.25), 1e-9)
	assert.Equal(t, -10.0, volumeToExponent(0))
}

func TestPlay_EmptyPathIsNoop(t *testing.T) {
	p := NewPlayer(nil)
	assert.NoError(t, p.Play(""))
}

func TestPlay_UnsupportedFormat(t *testing.T) {
	p := NewPlayer(nil)
	err := p.Play(filepath.Join(t.TempDir(), "alarm.flac"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestPlay_MissingFile(t *testing.T) {
	p := NewPlayer(nil)
	err := p.Play(filepath.Join(t.TempDir(), "missing.wav"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPreload_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wave file"), 0o644))

	p := NewPlayer(nil)
	err := p.Preload(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode sound")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "sounds", "bell.ogg"), ExpandPath("~/sounds/bell.ogg"))
	assert.Equal(t, "/abs/bell.ogg", ExpandPath("/abs/bell.ogg"))
	assert.Equal(t, "", ExpandPath(""))
}
