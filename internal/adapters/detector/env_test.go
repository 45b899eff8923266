package detector_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/swatch/internal/adapters/detector"
)

func TestIsCI(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "true", want: true},
		{value: "1", want: true},
		{value: "false", want: false},
		{value: "", want: false},
	}

	for _, tt := range tests {
		t.Run("CI="+tt.value, func(t *testing.T) {
			t.Setenv("CI", tt.value)
			assert.Equal(t, tt.want, detector.IsCI())
		})
	}
}

func TestDetectEnvironment_NotATerminal(t *testing.T) {
	t.Setenv("CI", "")

	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.Equal(t, detector.ModePlain, detector.DetectEnvironment(f))
	assert.Equal(t, detector.ModePlain, detector.DetectEnvironment(nil))
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name     string
		detected detector.OutputMode
		flag     string
		want     detector.OutputMode
	}{
		{name: "auto keeps detection", detected: detector.ModePretty, flag: "auto", want: detector.ModePretty},
		{name: "empty keeps detection", detected: detector.ModePlain, flag: "", want: detector.ModePlain},
		{name: "pretty overrides", detected: detector.ModePlain, flag: "pretty", want: detector.ModePretty},
		{name: "color alias", detected: detector.ModePlain, flag: "color", want: detector.ModePretty},
		{name: "plain overrides", detected: detector.ModePretty, flag: "plain", want: detector.ModePlain},
		{name: "ci alias", detected: detector.ModePretty, flag: "ci", want: detector.ModePlain},
		{name: "unknown keeps detection", detected: detector.ModePretty, flag: "fancy", want: detector.ModePretty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detector.ResolveMode(tt.detected, tt.flag))
		})
	}
}

func TestOutputMode_String(t *testing.T) {
	assert.Equal(t, "auto", detector.ModeAuto.String())
	assert.Equal(t, "pretty", detector.ModePretty.String())
	assert.Equal(t, "plain", detector.ModePlain.String())
}
