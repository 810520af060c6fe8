package overlay

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-vr/common"
)

// GPULineVertexSource is the WGSL definition of the LineVertex vertex input.
// Matches GPULineVertex layout exactly (32 bytes).
const GPULineVertexSource = `struct LineVertex {
    @location(0) position: vec3<f32>,
    @location(1) width: f32,
    @location(2) color: vec4<f32>,
};`

// GPULineVertex is the GPU-aligned representation of one line end point.
// Size: 32 bytes.
type GPULineVertex struct {
	Position [3]float32 // offset  0: physical-space position (vec3<f32>)
	Width    float32    // offset 12: line width in pixels (f32)
	Color    [4]float32 // offset 16: linear RGBA color (vec4<f32>)
}

// Size returns the size of the GPULineVertex struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (g *GPULineVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// MarshalTo serializes the vertex into buf, which must hold at least Size bytes.
//
// Parameters:
//   - buf: destination buffer
func (g *GPULineVertex) MarshalTo(buf []byte) {
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Position[i]))
	}
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(g.Width))
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Color[i]))
	}
}

// Marshal serializes the vertex into a new byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPULineVertex) Marshal() []byte {
	buf := make([]byte, g.Size())
	g.MarshalTo(buf)
	return buf
}

// Vertices expands the segments into a line-list vertex array (two vertices per segment).
//
// Returns:
//   - []GPULineVertex: the vertices in draw order
func (l *Lines) Vertices() []GPULineVertex {
	out := make([]GPULineVertex, 0, 2*len(l.segments))
	for _, s := range l.segments {
		out = append(out,
			GPULineVertex{Position: common.ToVec3f(s.From), Width: s.Width, Color: s.Color},
			GPULineVertex{Position: common.ToVec3f(s.To), Width: s.Width, Color: s.Color},
		)
	}
	return out
}

// Marshal serializes all segments as a line-list vertex buffer.
//
// Returns:
//   - []byte: the serialized vertex data, or nil for an empty list
func (l *Lines) Marshal() []byte {
	verts := l.Vertices()
	if len(verts) == 0 {
		return nil
	}
	stride := verts[0].Size()
	buf := make([]byte, stride*len(verts))
	for i := range verts {
		verts[i].MarshalTo(buf[i*stride:])
	}
	return buf
}
