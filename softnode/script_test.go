package softnode

import (
	"testing"

	"github.com/phanxgames/pixelnode"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "tick", "frames": 3},
			{"action": "resize", "width": 5, "height": 5},
			{"action": "screenshot", "label": "small"}
		]
	}`)

	s, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 steps, got %d", s.Len())
	}
	if s.steps[0].Action != "tick" || s.steps[0].Frames != 3 {
		t.Error("step 0 mismatch")
	}
	if s.steps[1].Width != 5 || s.steps[1].Height != 5 {
		t.Error("step 1 mismatch")
	}
}

func TestLoadScript_Invalid(t *testing.T) {
	for _, data := range []string{
		`not json`,
		`{"steps": []}`,
		`{"steps": [{"action": "click"}]}`,
	} {
		if _, err := LoadScript([]byte(data)); err == nil {
			t.Errorf("LoadScript(%s): expected error", data)
		}
	}
}

func TestScriptRun(t *testing.T) {
	it, err := pixelnode.NewItem(pixelnode.Config{Width: 4, Height: 4, GrowEvery: 2})
	if err != nil {
		t.Fatal(err)
	}
	h := NewHost(it, 16, 16)

	s, err := LoadScript([]byte(`{"steps": [
		{"action": "tick", "frames": 2},
		{"action": "opacity", "opacity": 0.5},
		{"action": "screenshot", "label": "grown"},
		{"action": "tick"},
		{"action": "screenshot", "label": "after"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	paths, err := s.Run(h, t.TempDir())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("wrote %d files, want 2", len(paths))
	}
	if got := it.Driver().Ticks(); got != 3 {
		t.Errorf("ticks = %d, want 3", got)
	}
	if w := it.Driver().Buffer().Width(); w != 14 {
		t.Errorf("buffer width = %d, want 14", w)
	}
	if got := it.Opacity(); got != 0.5 {
		t.Errorf("opacity = %v, want 0.5", got)
	}

	if err := h.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if created, released := it.Bridge().Counts(); created != 1 || released != 1 {
		t.Errorf("nodes created/released = %d/%d, want 1/1", created, released)
	}
	if it.Bridge().Node() != nil {
		t.Error("node still held after release")
	}
}
