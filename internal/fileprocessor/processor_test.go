package fileprocessor

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/pipeline"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// testProgram draws glyph 1 at (0,0) and loops.
var testProgram = []byte{
	0x60, 0x01, // ld V0, $01
	0xF0, 0x29, // ld F, V0
	0xD1, 0x15, // drw V1, V1, $5
	0x12, 0x06, // jp $206
}

func headlessOptions(t *testing.T, program []byte) options.Program {
	t.Helper()
	return options.Program{
		Parameters: options.Parameters{
			Input: createTempFile(t, "test.ch8", program),
		},
		Flags: options.Flags{
			Backend: options.BackendHeadless,
		},
		Emulation: options.Emulation{
			Scale:         1,
			ClockHz:       0,
			TimerDivider:  1,
			StackSize:     16,
			UnknownOpcode: string(pipeline.UnknownOpcodeHalt),
			Cycles:        100,
			Seed:          1,
		},
	}
}

func TestProcessFileHeadless(t *testing.T) {
	opts := headlessOptions(t, testProgram)
	opts.Screenshot = filepath.Join(t.TempDir(), "screen.png")

	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts)
	assert.NoError(t, err)

	file, err := os.Open(opts.Screenshot)
	assert.NoError(t, err)
	defer func() { _ = file.Close() }()

	img, err := png.Decode(file)
	assert.NoError(t, err)
	// top row of glyph 1 is 0x20
	r, _, _, _ := img.At(2, 0).RGBA()
	assert.True(t, r > 0)
	r, _, _, _ = img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0), r)
}

func TestRunHeadlessScript(t *testing.T) {
	opts := headlessOptions(t, testProgram)
	opts.Cycles = 0
	opts.Script = createTempFile(t, "test.lua", []byte(`
		function on_frame(frame)
			return frame < 2
		end
	`))

	p, err := Run(context.Background(), log.NewTestLogger(t), opts, testProgram)
	assert.NoError(t, err)
	assert.Equal(t, uint64(2*(pipeline.DefaultClockHz/pipeline.FrameRate)), p.Cycles())
	assert.True(t, p.CPU().Display().Pixel(2, 0))
}

func TestProcessFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		opts := headlessOptions(t, testProgram)
		opts.Input = filepath.Join(t.TempDir(), "missing.ch8")
		err := ProcessFile(context.Background(), log.NewTestLogger(t), opts)
		assert.ErrorContains(t, err, "loading ROM")
	})

	t.Run("fatal program error", func(t *testing.T) {
		opts := headlessOptions(t, []byte{0x00, 0xEE})
		err := ProcessFile(context.Background(), log.NewTestLogger(t), opts)
		assert.ErrorContains(t, err, "running ROM")
		assert.ErrorContains(t, err, "stack underflow")
	})

	t.Run("NES ROM", func(t *testing.T) {
		opts := headlessOptions(t, []byte{'N', 'E', 'S', 0x1A, 0x01, 0x00})
		err := ProcessFile(context.Background(), log.NewTestLogger(t), opts)
		assert.ErrorContains(t, err, "unsupported system")
	})

	t.Run("unsupported backend", func(t *testing.T) {
		opts := headlessOptions(t, testProgram)
		opts.Backend = "sdl"
		_, err := Run(context.Background(), log.NewTestLogger(t), opts, testProgram)
		assert.ErrorContains(t, err, "unsupported backend 'sdl'")
	})
}

func TestDisassemble(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Disassemble(&buf, testProgram))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "$200  60 01  "))
	assert.True(t, strings.HasPrefix(lines[3], "$206  12 06  "))
}

func TestPrintBanner(t *testing.T) {
	logger := log.NewTestLogger(t)
	PrintBanner(logger, options.Program{}, "1.0.0", "abcdef0123", "2024-01-01")
	PrintBanner(logger, options.Program{Flags: options.Flags{Quiet: true}}, "dev", "", "")
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
