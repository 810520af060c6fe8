package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/Carmen-Shannon/oxy-vr/engine/screen"
	"github.com/Carmen-Shannon/oxy-vr/engine/viewer"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func project(m [16]float32, p mgl64.Vec3) mgl64.Vec3 {
	var clip [4]float64
	in := [4]float64{p[0], p[1], p[2], 1}
	for row := range 4 {
		for col := range 4 {
			clip[row] += float64(m[col*4+row]) * in[col]
		}
	}
	return mgl64.Vec3{clip[0] / clip[3], clip[1] / clip[3], clip[2] / clip[3]}
}

func deskScreen() screen.Screen {
	return screen.NewScreen("desk", 0.4, 0.3, screen.WithTransform(
		common.NewONTransform(mgl64.Vec3{-0.2, 0, 0}, mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{1, 0, 0}))))
}

func TestScreenCornersMapToClipCorners(t *testing.T) {
	scr := deskScreen()
	// off-center eye: the frustum is asymmetric but still hugs the screen
	v := viewer.NewViewer("user", viewer.WithHeadTransform(common.TranslateFromOriginTo(mgl64.Vec3{0.13, -0.5, 0.22})))
	c := NewCamera(scr, v)

	vp := c.ViewProjectionMatrix()
	corners := map[[2]float64][2]float64{
		{0, 0}:     {-1, -1},
		{0.4, 0}:   {1, -1},
		{0.4, 0.3}: {1, 1},
		{0, 0.3}:   {-1, 1},
	}
	for local, want := range corners {
		ndc := project(vp, scr.Transform().TransformPoint(mgl64.Vec3{local[0], local[1], 0}))
		assert.InDelta(t, want[0], ndc[0], 1e-4, "corner %v x", local)
		assert.InDelta(t, want[1], ndc[1], 1e-4, "corner %v y", local)
		assert.Greater(t, ndc[2], 0.0)
		assert.Less(t, ndc[2], 1.0)
	}
	assert.Equal(t, mgl64.Vec3{0.13, -0.5, 0.22}, c.EyePosition())
}

func TestDepthRange(t *testing.T) {
	scr := deskScreen()
	v := viewer.NewViewer("user", viewer.WithHeadTransform(common.TranslateFromOriginTo(mgl64.Vec3{0, -0.6, 0.15})))
	c := NewCamera(scr, v, WithPlanes(0.1, 10))

	vp := c.ViewProjectionMatrix()
	near := project(vp, mgl64.Vec3{0, -0.5, 0.15})
	far := project(vp, mgl64.Vec3{0, 9.4, 0.15})
	assert.InDelta(t, 0, near[2], 1e-4)
	assert.InDelta(t, 1, far[2], 1e-4)
	assert.InDelta(t, 0, near[0], 1e-5)
	assert.InDelta(t, 0, near[1], 1e-5)
}

func TestCameraFollowsRig(t *testing.T) {
	scr := deskScreen()
	v := viewer.NewViewer("user", viewer.WithHeadTransform(common.TranslateFromOriginTo(mgl64.Vec3{0, -0.6, 0.15})))
	c := NewCamera(scr, v)

	// moving screen and viewer together leaves the view of a co-moving point unchanged
	point := mgl64.Vec3{0.05, 0.4, 0.2}
	before := project(c.ViewProjectionMatrix(), point)

	move := common.NewONTransform(mgl64.Vec3{1, 2, 3}, mgl64.QuatRotate(0.7, mgl64.Vec3{0, 0, 1}))
	scr.SetTransform(move.Mul(scr.Transform()))
	v.DetachFromDevice(move.Mul(v.HeadTransformation()))
	require.True(t, c.Update())

	after := project(c.ViewProjectionMatrix(), move.TransformPoint(point))
	assert.True(t, common.VecNear(before, after, 1e-4), "before %v after %v", before, after)
}

func TestEyeBehindScreenKeepsMatrices(t *testing.T) {
	scr := deskScreen()
	v := viewer.NewViewer("user", viewer.WithHeadTransform(common.TranslateFromOriginTo(mgl64.Vec3{0, -0.6, 0.15})))
	c := NewCamera(scr, v)
	vp := c.ViewProjectionMatrix()

	v.DetachFromDevice(common.TranslateFromOriginTo(mgl64.Vec3{0, 0.6, 0.15}))
	assert.False(t, c.Update())
	assert.Equal(t, vp, c.ViewProjectionMatrix())
	assert.Equal(t, mgl64.Vec3{0, -0.6, 0.15}, c.EyePosition())
}

func TestStereoEyes(t *testing.T) {
	scr := deskScreen()
	v := viewer.NewViewer("user", viewer.WithHeadTransform(common.TranslateFromOriginTo(mgl64.Vec3{0, -0.6, 0.15})))
	left := NewCamera(scr, v, WithEye(common.EyeLeft))
	right := NewCamera(scr, v, WithEye(common.EyeRight))

	assert.Equal(t, common.EyeLeft, left.Eye())
	assert.InDelta(t, -0.0325, left.EyePosition()[0], 1e-12)
	assert.InDelta(t, 0.0325, right.EyePosition()[0], 1e-12)
	assert.NotEqual(t, left.ProjectionMatrix(), right.ProjectionMatrix())
}

func TestUniformMarshal(t *testing.T) {
	scr := deskScreen()
	v := viewer.NewViewer("user", viewer.WithHeadTransform(common.TranslateFromOriginTo(mgl64.Vec3{0, -0.6, 0.15})))
	u := NewCamera(scr, v).Uniform()

	buf := u.Marshal()
	require.Len(t, buf, 80)
	assert.Equal(t, 80, u.Size())
	for i, want := range u.ViewProj {
		assert.Equal(t, want, math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:])), "view_proj[%d]", i)
	}
	for i, want := range u.EyePosition {
		assert.Equal(t, want, math.Float32frombits(binary.LittleEndian.Uint32(buf[64+i*4:])), "eye_position[%d]", i)
	}
}
