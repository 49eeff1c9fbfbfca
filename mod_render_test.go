package garland

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The Go uniform structs mirror the WGSL structs byte for byte; a stray
// or missing field would shift every field after it on the GPU side.
func TestUniformLayoutSizes(t *testing.T) {
	assert.Len(t, toBufferBytes(sceneUniforms{}), 208)
	assert.Len(t, toBufferBytes(snowUniforms{}), 160)
	assert.Len(t, toBufferBytes(passParams{}), 16)
}

func TestInstanceLayoutStrides(t *testing.T) {
	sparkle := createInstanceBufferLayout(SparkleInstance{})
	assert.Equal(t, uint64(40), sparkle.ArrayStride)
	assert.Len(t, sparkle.Attributes, 4)

	snow := createInstanceBufferLayout(SnowInstance{})
	assert.Equal(t, uint64(12), snow.ArrayStride)
	assert.Len(t, snow.Attributes, 1)
}
