package rom

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	data := []byte{0x12, 0x00, 0xA2, 0x00}

	r, err := Load(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, 4, r.Size())
	assert.Equal(t, data, r.Data())
}

func TestLoadEmpty(t *testing.T) {
	r, err := Load(bytes.NewReader(nil))
	assert.NoError(t, err)
	assert.Equal(t, 0, r.Size())
}

func TestLoadTooLarge(t *testing.T) {
	data := make([]byte, MaxSize+1)

	_, err := Load(bytes.NewReader(data))
	assert.ErrorContains(t, err, "exceeds maximum")
}

func TestLoadFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "test.ch8")
	data := []byte{0x60, 0x01, 0x12, 0x00}
	assert.NoError(t, os.WriteFile(name, data, 0o644))

	r, err := LoadFile(name)
	assert.NoError(t, err)
	assert.Equal(t, data, r.Data())
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.ch8"))
	assert.Error(t, err)
}
