package overlay

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesAddAndReset(t *testing.T) {
	var l Lines
	red := common.Color{1, 0, 0, 1}
	l.Add(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, red, 3)
	l.AddLoop([]mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}}, red, 1)

	require.Equal(t, 4, l.Len())
	last := l.Segments()[3]
	assert.Equal(t, mgl64.Vec3{1, 1, 0}, last.From)
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, last.To)

	l.Reset()
	assert.Equal(t, 0, l.Len())
	assert.Nil(t, l.Marshal())
}

func TestLineVertexLayout(t *testing.T) {
	var v GPULineVertex
	assert.Equal(t, 32, v.Size())

	v = GPULineVertex{Position: [3]float32{1, 2, 3}, Width: 3, Color: [4]float32{0.5, 0.25, 0, 1}}
	buf := v.Marshal()
	require.Len(t, buf, 32)
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(buf[4:])))
	assert.Equal(t, float32(3), math.Float32frombits(binary.LittleEndian.Uint32(buf[12:])))
	assert.Equal(t, float32(0.25), math.Float32frombits(binary.LittleEndian.Uint32(buf[20:])))
}

func TestLinesMarshal(t *testing.T) {
	var l Lines
	l.Add(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 5}, common.Color{1, 1, 1, 1}, 1)
	l.Add(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{2, 0, 0}, common.Color{0, 1, 0, 1}, 2)

	buf := l.Marshal()
	require.Len(t, buf, 4*32)
	// second vertex of the first segment
	assert.Equal(t, float32(5), math.Float32frombits(binary.LittleEndian.Uint32(buf[32+8:])))
	// first vertex of the second segment carries its width
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(buf[64+12:])))
}
