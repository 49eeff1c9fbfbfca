package garland

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// SceneConfig parameterizes the generators and the post chain. Consumed
// once at construction; there is no runtime reconfiguration.
type SceneConfig struct {
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`
	WindowTitle  string `yaml:"window_title"`
	Greeting     string `yaml:"greeting"`

	Seed int64 `yaml:"seed"`

	TreeCount  int `yaml:"tree_count"`
	TreeTiers  int `yaml:"tree_tiers"`
	HeartCount int `yaml:"heart_count"`
	SwirlCount int `yaml:"swirl_count"`
	SnowCount  int `yaml:"snow_count"`

	// Hex color stops, e.g. "#2e8b57". The tree palette is interpolated
	// between the top and bottom stop.
	TreeTopColor    string `yaml:"tree_top_color"`
	TreeBottomColor string `yaml:"tree_bottom_color"`
	HeartColor      string `yaml:"heart_color"`

	BloomThreshold float32 `yaml:"bloom_threshold"`
	BloomStrength  float32 `yaml:"bloom_strength"`
	BloomRadius    float32 `yaml:"bloom_radius"`
	Exposure       float32 `yaml:"exposure"`
}

func DefaultSceneConfig() SceneConfig {
	return SceneConfig{}.withDefaults()
}

func (c SceneConfig) withDefaults() SceneConfig {
	if c.WindowWidth <= 0 {
		c.WindowWidth = 1280
	}
	if c.WindowHeight <= 0 {
		c.WindowHeight = 720
	}
	if c.WindowTitle == "" {
		c.WindowTitle = "Garland"
	}
	if c.Greeting == "" {
		c.Greeting = "Merry Christmas"
	}
	if c.Seed == 0 {
		c.Seed = 1225
	}
	if c.TreeCount <= 0 {
		c.TreeCount = 12000
	}
	if c.TreeTiers <= 0 {
		c.TreeTiers = 7
	}
	if c.HeartCount <= 0 {
		c.HeartCount = 2200
	}
	if c.SwirlCount <= 0 {
		c.SwirlCount = 3500
	}
	if c.SnowCount <= 0 {
		c.SnowCount = 900
	}
	if c.TreeTopColor == "" {
		c.TreeTopColor = "#9fe8a0"
	}
	if c.TreeBottomColor == "" {
		c.TreeBottomColor = "#1d5e3a"
	}
	if c.HeartColor == "" {
		c.HeartColor = "#ff2d55"
	}
	if c.BloomThreshold <= 0 {
		c.BloomThreshold = 0.85
	}
	if c.BloomStrength <= 0 {
		c.BloomStrength = 0.35
	}
	if c.BloomRadius <= 0 {
		c.BloomRadius = 0.85
	}
	if c.Exposure <= 0 {
		c.Exposure = 0.8
	}
	return c
}

// LoadSceneConfig reads an optional YAML override file. A missing path
// yields the defaults; a malformed file is an error.
func LoadSceneConfig(path string) (SceneConfig, error) {
	if path == "" {
		return DefaultSceneConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSceneConfig(), nil
		}
		return SceneConfig{}, err
	}
	var cfg SceneConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SceneConfig{}, fmt.Errorf("parse scene config %s: %w", path, err)
	}
	return cfg.withDefaults(), nil
}

// ParseHexColor converts "#rrggbb" into linear-ish RGB in [0,1].
func ParseHexColor(s string) (mgl32.Vec3, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return mgl32.Vec3{}, fmt.Errorf("bad hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return mgl32.Vec3{}, fmt.Errorf("bad hex color %q: %w", s, err)
	}
	return mgl32.Vec3{
		float32((v>>16)&0xff) / 255.0,
		float32((v>>8)&0xff) / 255.0,
		float32(v&0xff) / 255.0,
	}, nil
}

func mustHexColor(s string, fallback mgl32.Vec3) mgl32.Vec3 {
	c, err := ParseHexColor(s)
	if err != nil {
		return fallback
	}
	return c
}
