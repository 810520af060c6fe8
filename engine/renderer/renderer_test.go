package renderer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineShaderSourceDeclaresInputs(t *testing.T) {
	for _, want := range []string{"struct CameraUniform", "struct LineVertex", "fn vs_main(in: LineVertex)", "fn fs_main"} {
		assert.True(t, strings.Contains(lineShaderSource, want), "missing %q", want)
	}
	assert.Equal(t, 1, strings.Count(lineShaderSource, "@group(0) @binding(0)"))
}
