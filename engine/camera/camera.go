package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/Carmen-Shannon/oxy-vr/engine/screen"
	"github.com/Carmen-Shannon/oxy-vr/engine/viewer"
	"github.com/go-gl/mathgl/mgl64"
)

type cameraImpl struct {
	mu *sync.Mutex

	screen screen.Screen
	viewer viewer.Viewer
	eye    common.Eye

	near float64
	far  float64

	eyePosition             mgl64.Vec3
	viewMatrix              [16]float32
	projectionMatrix        [16]float32
	viewProjectionMatrix    [16]float32
	inverseProjectionMatrix [16]float32
}

// Camera is the projection of one eye of a viewer through one screen.
// Unlike a free-flying camera it has no position or orientation of its own: the eye position
// comes from the viewer and the frustum is the pyramid from the eye through the screen
// rectangle, so moving either the screen or the viewer moves the camera.
type Camera interface {
	// Screen returns the screen the camera projects through.
	Screen() screen.Screen

	// Viewer returns the viewer whose eye the camera follows.
	Viewer() viewer.Viewer

	// Eye returns which of the viewer's eyes the camera uses.
	Eye() common.Eye

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float64: near plane distance in physical units
	Near() float64

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float64: far plane distance in physical units
	Far() float64

	// SetPlanes sets the clipping plane distances and recomputes matrices.
	//
	// Parameters:
	//   - near: near plane distance (must be > 0)
	//   - far: far plane distance (must be > near)
	SetPlanes(near, far float64)

	// EyePosition returns the physical-space eye position used by the last Update.
	//
	// Returns:
	//   - mgl64.Vec3: the eye position
	EyePosition() mgl64.Vec3

	// ViewMatrix returns the current 4x4 view matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 off-axis projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the current combined view-projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// InverseProjectionMatrix returns the inverse of the current projection matrix.
	//
	// Returns:
	//   - [16]float32: the inverse projection matrix
	InverseProjectionMatrix() [16]float32

	// Update reads the screen and viewer and recomputes all matrices.
	// Should be called once per frame after tools have moved the rig.
	//
	// Returns:
	//   - bool: false if the eye is on or behind the screen plane; the previous matrices are kept
	Update() bool

	// Uniform returns the camera state in its GPU layout.
	//
	// Returns:
	//   - GPUCameraUniform: the uniform buffer contents
	Uniform() GPUCameraUniform
}

var _ Camera = &cameraImpl{}

// NewCamera creates a camera for one eye of v looking through scr.
//
// Parameters:
//   - scr: the screen to project through
//   - v: the viewer supplying the eye position
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(scr screen.Screen, v viewer.Viewer, options ...CameraBuilderOption) Camera {
	if scr == nil || v == nil {
		panic("camera: NewCamera requires a non-nil Screen and Viewer")
	}
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		screen: scr,
		viewer: v,
		eye:    common.EyeMono,
		near:   0.1,
		far:    100.0,
	}
	ident := common.Mat4f(mgl64.Ident4())
	c.viewMatrix, c.projectionMatrix = ident, ident
	c.viewProjectionMatrix, c.inverseProjectionMatrix = ident, ident
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Screen() screen.Screen {
	return c.screen
}

func (c *cameraImpl) Viewer() viewer.Viewer {
	return c.viewer
}

func (c *cameraImpl) Eye() common.Eye {
	return c.eye
}

func (c *cameraImpl) Near() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) SetPlanes(near, far float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) EyePosition() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eyePosition
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) InverseProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inverseProjectionMatrix
}

func (c *cameraImpl) Update() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updateMatrices()
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return GPUCameraUniform{
		ViewProj:    c.viewProjectionMatrix,
		EyePosition: common.ToVec3f(c.eyePosition),
	}
}

// updateMatrices rebuilds the view and projection from the current screen and eye.
// The view maps physical space into screen space shifted so the eye sits at the origin;
// the projection is the frustum through the screen rectangle clipped at near and far.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() bool {
	screenT := c.screen.ScreenTransformation()
	w, h := c.screen.Size()
	eyePhys := c.viewer.EyePosition(c.eye)
	e := screenT.InverseTransformPoint(eyePhys)
	if e[2] <= 0 {
		return false
	}
	c.eyePosition = eyePhys

	view := mgl64.Translate3D(-e[0], -e[1], -e[2]).Mul4(screenT.Inverse().Mat4())
	s := c.near / e[2]
	proj := common.OffAxisFrustum(-e[0]*s, (w-e[0])*s, -e[1]*s, (h-e[1])*s, c.near, c.far)

	c.viewMatrix = common.Mat4f(view)
	c.projectionMatrix = common.Mat4f(proj)
	c.viewProjectionMatrix = common.Mat4f(proj.Mul4(view))
	c.inverseProjectionMatrix = common.Mat4f(proj.Inv())
	return true
}
