package cli

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "default flags",
			args: []string{"prog", "test.ch8"},
			want: options.Program{ROM: "test.ch8", Frontend: "sdl", Scale: 10, Cycles: 500},
		},
		{
			name: "terminal frontend",
			args: []string{"prog", "-frontend", "terminal", "test.ch8"},
			want: options.Program{ROM: "test.ch8", Frontend: "terminal", Scale: 10, Cycles: 500},
		},
		{
			name: "frontend name is case insensitive",
			args: []string{"prog", "-frontend", "SDL", "test.ch8"},
			want: options.Program{ROM: "test.ch8", Frontend: "sdl", Scale: 10, Cycles: 500},
		},
		{
			name: "custom speed and scale",
			args: []string{"prog", "-cycles", "700", "-scale", "4", "test.ch8"},
			want: options.Program{ROM: "test.ch8", Frontend: "sdl", Scale: 4, Cycles: 700},
		},
		{
			name: "mute flag",
			args: []string{"prog", "-mute", "test.ch8"},
			want: options.Program{ROM: "test.ch8", Frontend: "sdl", Scale: 10, Cycles: 500, Mute: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "missing ROM file",
			args: []string{"prog"},
		},
		{
			name: "unsupported frontend",
			args: []string{"prog", "-frontend", "gtk", "test.ch8"},
		},
		{
			name: "invalid cycles value",
			args: []string{"prog", "-cycles", "0", "test.ch8"},
		},
		{
			name: "invalid scale value",
			args: []string{"prog", "-scale", "-1", "test.ch8"},
		},
		{
			name: "flag after ROM file",
			args: []string{"prog", "test.ch8", "-mute"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			_, err := ParseFlags()
			assert.Error(t, err)
		})
	}
}

func TestUsageErrorShowUsage(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"prog", "test.ch8", "-mute"}

	_, err := ParseFlags()
	assert.Error(t, err)

	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))
	assert.NotNil(t, usageErr.flags)

	output := captureStdout(t, usageErr.ShowUsage)
	assert.Contains(t, output, "last argument")
	assert.Contains(t, output, "usage: chip8emu")
	assert.Contains(t, output, "frontend")
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	reader, writer, err := os.Pipe()
	assert.NoError(t, err)

	oldStdout := os.Stdout
	os.Stdout = writer
	t.Cleanup(func() { os.Stdout = oldStdout })

	fn()

	assert.NoError(t, writer.Close())
	os.Stdout = oldStdout
	data, err := io.ReadAll(reader)
	assert.NoError(t, err)
	return string(data)
}
