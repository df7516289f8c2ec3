package libgl

import (
	"testing"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/stretchr/testify/assert"
)

func TestFormatDebugMessage(t *testing.T) {
	msg := formatDebugMessage(gl.DEBUG_SOURCE_SHADER_COMPILER, gl.DEBUG_TYPE_ERROR, 7, gl.DEBUG_SEVERITY_MEDIUM, "0:12: syntax error")
	assert.Equal(t, "[ERROR] ERROR #7 from SHADER_COMPILER: 0:12: syntax error", msg)

	msg = formatDebugMessage(gl.DEBUG_SOURCE_OTHER, gl.DEBUG_TYPE_OTHER, 1, 0, "?")
	assert.Equal(t, "[UNKNOWN] OTHER #1 from OTHER: ?", msg)
}
