package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-ocean/internal/config"
)

func TestRenderWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ocean.png")
	var out bytes.Buffer

	err := cmdRender([]string{"-size", "32", "-seed", "4", "-t", "2", "-o", path}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "32x32")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
}

func TestRenderRejectsBadSize(t *testing.T) {
	err := cmdRender([]string{"-size", "30", "-o", filepath.Join(t.TempDir(), "x.png")}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestBench(t *testing.T) {
	var out bytes.Buffer
	err := cmdBench([]string{"-size", "16", "-steps", "3", "-backend", "serial"}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "serial")
	assert.Contains(t, out.String(), "Mean")

	assert.Error(t, cmdBench([]string{"-steps", "0"}, &bytes.Buffer{}))
}

func TestTwiddleTable(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, cmdTwiddle([]string{"-size", "4"}, &out))

	var lines []string
	for _, l := range strings.Split(out.String(), "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	// header + 2 stages × 4 rows
	assert.Len(t, lines, 9)
	assert.Contains(t, lines[0], "stage")

	assert.Error(t, cmdTwiddle([]string{"-size", "6"}, &bytes.Buffer{}))
}

func TestConfigPrintAndSave(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, cmdConfig(nil, &out))
	assert.Contains(t, out.String(), "wind_intensity:")
	assert.Contains(t, out.String(), "backend: cpu")

	path := filepath.Join(t.TempDir(), "config.yaml")
	out.Reset()
	require.NoError(t, cmdConfig([]string{"-save", path}, &out))

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}
