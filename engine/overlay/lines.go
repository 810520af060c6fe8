// Package overlay collects the line geometry tools draw on top of the scene (crosshairs,
// frusta) and packs it for GPU upload.
package overlay

import (
	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/go-gl/mathgl/mgl64"
)

// Segment is one physical-space line segment.
type Segment struct {
	From  mgl64.Vec3
	To    mgl64.Vec3
	Color common.Color
	Width float32
}

// Lines is an ordered list of line segments. Later segments draw over earlier ones.
// The zero value is an empty list ready to use.
type Lines struct {
	segments []Segment
}

// Add appends one segment.
func (l *Lines) Add(from, to mgl64.Vec3, color common.Color, width float32) {
	l.segments = append(l.segments, Segment{From: from, To: to, Color: color, Width: width})
}

// AddLoop appends the closed polygon through points.
func (l *Lines) AddLoop(points []mgl64.Vec3, color common.Color, width float32) {
	for i := range points {
		l.Add(points[i], points[(i+1)%len(points)], color, width)
	}
}

// Segments returns the segments in draw order. The slice must not be modified.
func (l *Lines) Segments() []Segment {
	return l.segments
}

// Len returns the number of segments.
func (l *Lines) Len() int {
	return len(l.segments)
}

// Reset empties the list, keeping its storage.
func (l *Lines) Reset() {
	l.segments = l.segments[:0]
}
