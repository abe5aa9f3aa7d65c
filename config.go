package pixelnode

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default animation constants.
const (
	DefaultWidth          = 640
	DefaultHeight         = 480
	DefaultGrowEvery      = 100
	DefaultGrowStep       = 10
	DefaultTickMillis     = 10
	DefaultRedIncrement   = 5
	DefaultGreenIncrement = 0x05

	// DefaultMaxBufferBytes caps a single pixel buffer allocation (1 GiB).
	DefaultMaxBufferBytes = 1 << 30
)

// DefaultPalette is the palette an item starts with.
var DefaultPalette = Palette{
	{R: 255, G: 0, B: 0},
	{R: 0, G: 255, B: 0},
	{R: 0, G: 0, B: 255},
	{R: 255, G: 0, B: 255},
}

// Config holds the item and animation parameters. Zero-valued fields fall
// back to the defaults above when passed through WithDefaults, so a zero
// increment or growth step cannot switch an effect off; the Freeze fields
// do that.
type Config struct {
	// Width and Height are the initial pixel buffer dimensions.
	Width  int `toml:"width"`
	Height int `toml:"height"`

	// GrowEvery is the tick interval between buffer growth events.
	GrowEvery uint64 `toml:"grow_every"`
	// GrowWidth and GrowHeight are added to the buffer on each growth event.
	GrowWidth  int `toml:"grow_width"`
	GrowHeight int `toml:"grow_height"`

	// TickMillis is the animation period in milliseconds.
	TickMillis int `toml:"tick_millis"`

	// RedIncrement is added (wrapping) to every palette entry's red channel
	// each tick.
	RedIncrement uint8 `toml:"red_increment"`
	// GreenIncrement is added (wrapping) to every texel's green byte each tick.
	GreenIncrement uint8 `toml:"green_increment"`

	// MaxBufferBytes caps the size of one buffer allocation.
	MaxBufferBytes int `toml:"max_buffer_bytes"`

	// ItemWidth and ItemHeight are the item's initial geometry in scene
	// units. Zero means "same as the buffer".
	ItemWidth  float64 `toml:"item_width"`
	ItemHeight float64 `toml:"item_height"`

	// FreezePalette, FreezeGreen and FreezeSize turn off the palette cycle,
	// the green scroll and buffer growth respectively.
	FreezePalette bool `toml:"freeze_palette"`
	FreezeGreen   bool `toml:"freeze_green"`
	FreezeSize    bool `toml:"freeze_size"`

	// Debug enables per-paint timing logs.
	Debug bool `toml:"debug"`
}

// DefaultConfig returns a Config populated with the default constants.
func DefaultConfig() Config {
	return Config{}.WithDefaults()
}

// WithDefaults returns a copy of c with every zero field replaced by its
// default.
func (c Config) WithDefaults() Config {
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.GrowEvery == 0 {
		c.GrowEvery = DefaultGrowEvery
	}
	if c.GrowWidth == 0 {
		c.GrowWidth = DefaultGrowStep
	}
	if c.GrowHeight == 0 {
		c.GrowHeight = DefaultGrowStep
	}
	if c.TickMillis == 0 {
		c.TickMillis = DefaultTickMillis
	}
	if c.RedIncrement == 0 {
		c.RedIncrement = DefaultRedIncrement
	}
	if c.GreenIncrement == 0 {
		c.GreenIncrement = DefaultGreenIncrement
	}
	if c.MaxBufferBytes == 0 {
		c.MaxBufferBytes = DefaultMaxBufferBytes
	}
	if c.ItemWidth == 0 {
		c.ItemWidth = float64(c.Width)
	}
	if c.ItemHeight == 0 {
		c.ItemHeight = float64(c.Height)
	}
	return c
}

// Validate reports configuration values that cannot produce a working item.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: buffer %dx%d: %w", c.Width, c.Height, ErrInvalidSize)
	}
	if c.GrowWidth < 0 || c.GrowHeight < 0 {
		return fmt.Errorf("config: negative growth %d/%d", c.GrowWidth, c.GrowHeight)
	}
	if c.TickMillis < 0 {
		return fmt.Errorf("config: negative tick period %d", c.TickMillis)
	}
	if c.ItemWidth < 0 || c.ItemHeight < 0 {
		return fmt.Errorf("config: negative item size %gx%g", c.ItemWidth, c.ItemHeight)
	}
	return nil
}

// TickInterval returns the animation period as a time.Duration.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickMillis) * time.Millisecond
}

// TicksPerSecond returns the tick rate implied by TickMillis, for hosts
// (such as Ebitengine) that schedule updates by rate rather than period.
func (c Config) TicksPerSecond() int {
	if c.TickMillis <= 0 {
		return 1000 / DefaultTickMillis
	}
	return max(1, 1000/c.TickMillis)
}

// ParseConfig decodes TOML data into a Config, applies defaults and
// validates the result.
func ParseConfig(data []byte) (Config, error) {
	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	c = c.WithDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadConfig reads and parses a TOML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}

// EncodeTOML encodes c as TOML.
func (c Config) EncodeTOML() ([]byte, error) {
	return toml.Marshal(c)
}
