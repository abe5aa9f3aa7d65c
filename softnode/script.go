package softnode

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a capture script.
type scriptStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences ticks, item changes and captures for a Host, for
// reproducible visual checks without a window. Supported actions:
//
//	{"action": "tick", "frames": 100}
//	{"action": "resize", "width": 320, "height": 240}
//	{"action": "opacity", "opacity": 0.5}
//	{"action": "screenshot", "label": "after-growth"}
type Script struct {
	steps []scriptStep
}

// LoadScript parses a JSON capture script.
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse capture script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse capture script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "tick", "resize", "opacity", "screenshot":
		default:
			return nil, fmt.Errorf("parse capture script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// Len returns the number of steps.
func (s *Script) Len() int {
	return len(s.steps)
}

// Run executes every step against h, writing screenshots into dir, and
// returns the paths written.
func (s *Script) Run(h *Host, dir string) ([]string, error) {
	var written []string
	for i, st := range s.steps {
		switch st.Action {
		case "tick":
			frames := max(st.Frames, 1)
			for range frames {
				if err := h.Step(); err != nil {
					return written, fmt.Errorf("step %d: %w", i, err)
				}
			}
		case "resize":
			h.Item.SetSize(st.Width, st.Height)
		case "opacity":
			h.Item.SetOpacity(st.Opacity)
		case "screenshot":
			path, err := h.Surface.Capture(dir, st.Label)
			if err != nil {
				return written, fmt.Errorf("step %d: %w", i, err)
			}
			written = append(written, path)
		}
	}
	return written, nil
}
