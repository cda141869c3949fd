package types

import (
	"encoding/json"
	"fmt"
	"slices"
)

// ColorStop is one position of a continuous color scale. It encodes as the
// [position, color] pair that Plotly.js accepts in a colorscale array.
type ColorStop struct {
	Position float64
	Color    string
}

// MarshalJSON encodes s as [position, color].
func (s ColorStop) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{s.Position, s.Color})
}

// UnmarshalJSON decodes a [position, color] pair.
func (s *ColorStop) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("color stop: want 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &s.Position); err != nil {
		return fmt.Errorf("color stop position: %w", err)
	}
	if err := json.Unmarshal(pair[1], &s.Color); err != nil {
		return fmt.Errorf("color stop color: %w", err)
	}
	return nil
}

// Sequential scales, sampled at ten evenly spaced points.
var colorScales = map[string][]string{ //nolint:gochecknoglobals // fixed palette table
	"Plasma":  {"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786", "#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921"},
	"Viridis": {"#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"},
	"Cividis": {"#00224e", "#123570", "#3b496c", "#575d6d", "#707173", "#8a8678", "#a59c74", "#c3b369", "#e1cc55", "#fee838"},
	"Inferno": {"#000004", "#1b0c41", "#4a0c6b", "#781c6d", "#a52c60", "#cf4446", "#ed6925", "#fb9b06", "#f7d13d", "#fcffa4"},
	"Magma":   {"#000004", "#180f3d", "#440f76", "#721f81", "#9e2f7f", "#cd4071", "#f1605d", "#fd9668", "#feca8d", "#fcfdbf"},
}

// ColorScale returns the stops of the named scale, from 0 to 1. Names are
// matched exactly.
func ColorScale(name string) ([]ColorStop, bool) {
	colors, ok := colorScales[name]
	if !ok {
		return nil, false
	}
	last := float64(len(colors) - 1)
	stops := make([]ColorStop, len(colors))
	for i, c := range colors {
		stops[i] = ColorStop{Position: float64(i) / last, Color: c}
	}
	stops[len(stops)-1].Position = 1
	return stops, true
}

// ColorScaleNames lists the known scale names in sorted order.
func ColorScaleNames() []string {
	names := make([]string, 0, len(colorScales))
	for name := range colorScales {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
