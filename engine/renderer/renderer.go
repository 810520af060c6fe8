package renderer

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/Carmen-Shannon/oxy-vr/engine/camera"
	"github.com/Carmen-Shannon/oxy-vr/engine/overlay"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/rs/zerolog/log"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingClearColor    *common.Color

	frames uint64
}

// Renderer draws one window's frame: a clear to the background color followed by the tool
// overlay lines seen through the window's camera.
//
// The Renderer hides the GPU backend behind a per-frame API so the engine loop never touches
// wgpu objects directly.
type Renderer interface {
	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the surface could not be reconfigured
	Resize(width, height int) error

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// A call to Resize is required after changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the background color frames are cleared to.
	//
	// Parameters:
	//   - c: the clear color
	SetClearColor(c common.Color)

	// DrawFrame renders and presents one frame: clear, then the overlay lines through cam.
	// An empty line list still clears and presents.
	//
	// Parameters:
	//   - cam: the window's camera, already updated for this frame
	//   - lines: the overlay segments to draw (may be nil)
	//
	// Returns:
	//   - error: an error if the frame could not be acquired or the overlay upload failed
	DrawFrame(cam camera.Camera, lines *overlay.Lines) error

	// Frames returns the number of frames presented so far.
	Frames() uint64

	// Release frees all GPU resources. The Renderer must not be used afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type and surface descriptor.
// The surface descriptor is platform-specific and is typically obtained from the platform window.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - surfaceDescriptor: the platform-specific surface descriptor for WebGPU surface creation
//   - width, height: the initial surface size in pixels
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
//   - error: an error if no adapter or device could be obtained
func NewRenderer(backendType RendererBackendType, surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend, err = newWGPURendererBackend(surfaceDescriptor, r.forceFallbackAdapter)
	}
	if err != nil {
		return nil, err
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	if r.pendingClearColor != nil {
		r.backend.SetClearColor(*r.pendingClearColor)
	}

	if err := r.backend.ConfigureSurface(width, height); err != nil {
		r.backend.Release()
		return nil, err
	}
	log.Debug().Int("width", width).Int("height", height).Msg("renderer ready")
	return r, nil
}

func (r *renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		// minimized windows report a zero framebuffer
		return nil
	}
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetClearColor(c common.Color) {
	r.backend.SetClearColor(c)
}

func (r *renderer) DrawFrame(cam camera.Camera, lines *overlay.Lines) error {
	if err := r.backend.BeginFrame(); err != nil {
		return err
	}
	var drawErr error
	if lines != nil && lines.Len() > 0 && cam != nil {
		drawErr = r.backend.DrawLines(cam.Uniform(), lines.Marshal(), uint32(2*lines.Len()))
	}
	r.backend.EndFrame()
	r.backend.Present()

	r.mu.Lock()
	r.frames++
	r.mu.Unlock()
	return drawErr
}

func (r *renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *renderer) Release() {
	r.backend.Release()
}
