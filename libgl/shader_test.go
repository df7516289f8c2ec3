package libgl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testShader = `#version 450 core
//meta:name grid_lines
layout(location = 0) in vec3 a_position;
void main() {}
`

func TestShaderName(t *testing.T) {
	assert.Equal(t, "grid_lines", shaderName(testShader))
	assert.Equal(t, "untitled", shaderName("#version 450 core\nvoid main() {}\n"))
}

func TestInjectDefines(t *testing.T) {
	src, err := injectDefines(testShader, map[string]string{"TINT": "vec3(1)", "FADE": ""})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(src, "#version 450 core\n#define FADE\n#define TINT vec3(1)\n//meta:name grid_lines\n"), src)

	src, err = injectDefines(testShader, nil)
	require.NoError(t, err)
	assert.Equal(t, testShader, src)

	_, err = injectDefines("void main() {}", map[string]string{"A": "1"})
	assert.Error(t, err)
}
