package pixelnode

import "fmt"

// AnimationState is the mutable state an Effect operates on during a tick.
type AnimationState struct {
	Buffer  *PixelBuffer
	Palette *Palette
	// Tick is the 1-based number of the tick being applied.
	Tick uint64
}

// Effect is one independently testable piece of the per-tick animation.
type Effect interface {
	Step(s *AnimationState) error
}

// PaletteCycle adds RedIncrement to every palette entry's red channel,
// wrapping modulo 256.
type PaletteCycle struct {
	RedIncrement uint8
}

// Step implements Effect.
func (e PaletteCycle) Step(s *AnimationState) error {
	s.Palette.AddRed(e.RedIncrement)
	return nil
}

// GrowthSchedule grows the buffer by (Width, Height) on every Every-th tick.
// Growth reallocates and reseeds the buffer.
type GrowthSchedule struct {
	Every         uint64
	Width, Height int
}

// Due reports whether tick is a growth tick.
func (e GrowthSchedule) Due(tick uint64) bool {
	return e.Every > 0 && tick%e.Every == 0
}

// Step implements Effect.
func (e GrowthSchedule) Step(s *AnimationState) error {
	if !e.Due(s.Tick) {
		return nil
	}
	w := s.Buffer.Width() + e.Width
	h := s.Buffer.Height() + e.Height
	if err := s.Buffer.Resize(w, h); err != nil {
		return fmt.Errorf("grow at tick %d: %w", s.Tick, err)
	}
	return nil
}

// GreenScroll advances bits 8–15 of every texel by Increment.
type GreenScroll struct {
	Increment uint8
}

// Step implements Effect.
func (e GreenScroll) Step(s *AnimationState) error {
	s.Buffer.ScrollGreen(e.Increment)
	return nil
}
