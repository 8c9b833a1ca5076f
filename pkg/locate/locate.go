// Package locate finds the diagnostic marker at or near a cursor.
package locate

import "sort"

// DefaultThreshold is the proximity window, in characters, for the
// nearest-neighbor strategy.
const DefaultThreshold = 100

// Marker associates a text range with a problem annotation. Start and End
// are character offsets; End is treated as inclusive. Payload is a
// structured diagnostic, a plain string, an opaque value, or nil.
type Marker struct {
	Start   int
	End     int
	Payload any
}

// Contains reports whether offset lies within the marker.
func (m Marker) Contains(offset int) bool {
	return m.Start <= offset && offset <= m.End
}

// Distance is 0 when offset is inside the marker, else the gap to the
// nearer boundary.
func (m Marker) Distance(offset int) int {
	switch {
	case m.Contains(offset):
		return 0
	case m.End < offset:
		return offset - m.End
	default:
		return m.Start - offset
	}
}

// closeness is the sort key among nearby markers.
func (m Marker) closeness(offset int) int {
	return min(abs(m.Start-offset), abs(m.End-offset))
}

// Strategy names the resolution step that produced a match.
type Strategy int

const (
	None Strategy = iota
	Containment
	Nearest
)

func (s Strategy) String() string {
	switch s {
	case Containment:
		return "containment"
	case Nearest:
		return "nearest"
	default:
		return "none"
	}
}

// Options tune Locate.
type Options struct {
	// Threshold is the exclusive distance limit for Nearest. Zero or less
	// uses DefaultThreshold.
	Threshold int
}

func (o Options) threshold() int {
	if o.Threshold <= 0 {
		return DefaultThreshold
	}
	return o.Threshold
}

// Locate resolves the marker for offset. The first marker in collection
// order containing the offset wins. Otherwise the closest marker within
// the threshold is returned. Markers without a payload are ignored.
func Locate(markers []Marker, offset int, opts Options) (Marker, Strategy, bool) {
	if m, ok := Containing(markers, offset); ok {
		return m, Containment, true
	}
	if m, ok := Closest(markers, offset, opts.threshold()); ok {
		return m, Nearest, true
	}
	return Marker{}, None, false
}

// Containing returns the first marker containing offset.
func Containing(markers []Marker, offset int) (Marker, bool) {
	for _, m := range markers {
		if m.Payload != nil && m.Contains(offset) {
			return m, true
		}
	}
	return Marker{}, false
}

// Nearby returns markers whose distance to offset is under threshold,
// closest first. Ties keep collection order.
func Nearby(markers []Marker, offset, threshold int) []Marker {
	var near []Marker
	for _, m := range markers {
		if m.Payload == nil {
			continue
		}
		if m.Distance(offset) < threshold {
			near = append(near, m)
		}
	}
	sort.SliceStable(near, func(i, j int) bool {
		return near[i].closeness(offset) < near[j].closeness(offset)
	})
	return near
}

// Closest returns the first of Nearby.
func Closest(markers []Marker, offset, threshold int) (Marker, bool) {
	near := Nearby(markers, offset, threshold)
	if len(near) == 0 {
		return Marker{}, false
	}
	return near[0], true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
