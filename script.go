package trellis

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a pointer script.
type scriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// scriptFile is the top-level JSON structure for a pointer script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// PointerScript replays a recorded pointer sequence against a Gui, one step
// per frame. Scripts feed the same entry points as live input, so a replay
// dispatches exactly like an interactive run. Attach to a Host via
// SetScript, or call Step yourself each frame.
type PointerScript struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	releasing bool
	done      bool
}

// LoadPointerScript parses a JSON pointer script. Supported actions are
// "move" (x, y), "press", "release", "click" (x, y; press one frame,
// release the next), and "wait" (frames).
func LoadPointerScript(jsonData []byte) (*PointerScript, error) {
	var script scriptFile
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse pointer script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse pointer script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "move", "press", "release", "click", "wait":
		default:
			return nil, fmt.Errorf("parse pointer script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &PointerScript{steps: script.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (s *PointerScript) Done() bool {
	return s.done
}

// Step advances the script by one frame, feeding pointer input to g.
func (s *PointerScript) Step(g *Gui) {
	if s.done {
		return
	}
	// A click holds the button for one frame; finish it before advancing.
	if s.releasing {
		g.HandlePointerButton(false)
		s.releasing = false
	} else {
		// Count down wait frames.
		if s.waitCount > 0 {
			s.waitCount--
			return
		}
		if s.cursor >= len(s.steps) {
			s.done = true
			return
		}

		st := s.steps[s.cursor]
		s.cursor++

		switch st.Action {
		case "move":
			g.HandlePointerMotion(float32(st.X), float32(st.Y))
		case "press":
			g.HandlePointerButton(true)
		case "release":
			g.HandlePointerButton(false)
		case "click":
			g.HandlePointerMotion(float32(st.X), float32(st.Y))
			g.HandlePointerButton(true)
			s.releasing = true
		case "wait":
			if st.Frames > 0 {
				s.waitCount = st.Frames - 1 // this frame counts as one
			}
		}
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && !s.releasing {
		s.done = true
	}
}
