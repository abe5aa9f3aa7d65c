package pixelnode

// RGB8 is one palette entry with 8-bit channels. Arithmetic on channels
// wraps modulo 256.
type RGB8 struct {
	R, G, B uint8
}

// PaletteSize is the fixed number of palette entries.
const PaletteSize = 4

// PaletteFloats is the flattened, normalized form of a Palette as pushed to
// render nodes: R, G, B for each entry in order, each channel / 255.
type PaletteFloats [PaletteSize * 3]float32

// Palette is an ordered set of exactly four colors.
type Palette [PaletteSize]RGB8

// AddRed adds delta to every entry's red channel with 8-bit wraparound.
func (p *Palette) AddRed(delta uint8) {
	for i := range p {
		p[i].R += delta
	}
}

// Floats converts the palette into 12 normalized floats.
func (p Palette) Floats() PaletteFloats {
	var out PaletteFloats
	for i, c := range p {
		out[i*3] = float32(c.R) / 255
		out[i*3+1] = float32(c.G) / 255
		out[i*3+2] = float32(c.B) / 255
	}
	return out
}
