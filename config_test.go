package garland

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSceneConfig(t *testing.T) {
	cfg := DefaultSceneConfig()

	assert.Equal(t, 12000, cfg.TreeCount)
	assert.Equal(t, 7, cfg.TreeTiers)
	assert.Equal(t, 2200, cfg.HeartCount)
	assert.Equal(t, 3500, cfg.SwirlCount)
	assert.Equal(t, 900, cfg.SnowCount)
	assert.Equal(t, int64(1225), cfg.Seed)
	assert.Equal(t, "Merry Christmas", cfg.Greeting)
	assert.InDelta(t, 0.85, cfg.BloomThreshold, 1e-6)
	assert.InDelta(t, 0.35, cfg.BloomStrength, 1e-6)
	assert.InDelta(t, 0.8, cfg.Exposure, 1e-6)
}

func TestLoadSceneConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadSceneConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSceneConfig(), cfg)
}

func TestLoadSceneConfig_OverridesMergeWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	data := []byte("tree_count: 500\ngreeting: Happy Holidays\nbloom_strength: 0.5\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadSceneConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.TreeCount)
	assert.Equal(t, "Happy Holidays", cfg.Greeting)
	assert.InDelta(t, 0.5, cfg.BloomStrength, 1e-6)
	// Untouched keys still get the defaults.
	assert.Equal(t, 2200, cfg.HeartCount)
	assert.Equal(t, int64(1225), cfg.Seed)
}

func TestLoadSceneConfig_MalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tree_count: [not a number"), 0o644))

	_, err := LoadSceneConfig(path)
	assert.Error(t, err)
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ff2d55")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c.X(), 1e-6)
	assert.InDelta(t, 45.0/255.0, c.Y(), 1e-6)
	assert.InDelta(t, 85.0/255.0, c.Z(), 1e-6)

	c, err = ParseHexColor("000000")
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{}, c)

	for _, bad := range []string{"", "#fff", "#gggggg", "#1234567"} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestMustHexColor_FallsBack(t *testing.T) {
	fallback := mgl32.Vec3{1, 0, 1}
	assert.Equal(t, fallback, mustHexColor("not-a-color", fallback))
	assert.NotEqual(t, fallback, mustHexColor("#2e8b57", fallback))
}
