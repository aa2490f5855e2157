package gfx_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neo-background/internal/gfx"
	"neo-background/internal/gfx/gfxtest"
)

func TestCompileProgramOrder(t *testing.T) {
	rec := gfxtest.NewRecorder()

	program, err := gfx.CompileProgram(rec, "void main() {}", "void main() {}")
	require.NoError(t, err)
	assert.NotZero(t, program)

	assert.Equal(t, []string{
		"createShader", "createShader",
		"shaderSource", "compileShader", "getShaderParameter",
		"shaderSource", "compileShader", "getShaderParameter",
		"createProgram", "attachShader", "attachShader", "linkProgram", "getProgramParameter",
		"deleteShader", "deleteShader",
	}, rec.Names())

	types := rec.Find("createShader")
	require.Len(t, types, 2)
	assert.Equal(t, gfx.VertexShader, types[0].Args[0])
	assert.Equal(t, gfx.FragmentShader, types[1].Args[0])
}

func TestCompileProgramReportsBothStages(t *testing.T) {
	rec := gfxtest.NewRecorder()
	rec.FailCompile = true
	rec.FailLink = true

	program, err := gfx.CompileProgram(rec, "bad", "bad")
	require.Error(t, err)
	assert.NotZero(t, program, "a program object is still created")
	assert.Contains(t, err.Error(), "vertex shader")
	assert.Contains(t, err.Error(), "fragment shader")
	assert.Contains(t, err.Error(), "failed to link program")

	// the sequence is not cut short by the failures
	assert.Equal(t, 1, rec.Count("linkProgram"))
}

func TestFloat32Bytes(t *testing.T) {
	b := gfx.Float32Bytes(-1, 0.5)
	require.Len(t, b, 8)
	assert.Equal(t, float32(-1), math.Float32frombits(binary.LittleEndian.Uint32(b[0:])))
	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(b[4:])))
}

func TestUint16Bytes(t *testing.T) {
	assert.Equal(t, []byte{0, 0, 1, 0, 3, 0, 0xff, 0xff}, gfx.Uint16Bytes(0, 1, 3, 0xffff))
}
