package background

import (
	_ "embed"
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"
)

// NativeSource is the WGSL version of the scene used by the native
// (WebGPU/Vulkan) pipeline. The time uniform lives at group 0, binding 0.
//
//go:embed shaders/background.wgsl
var NativeSource string

// NativeStartSeconds is where the native pipeline starts its clock, so the
// first frame already shows bands in motion.
const NativeStartSeconds = 10.0

// CompileNative compiles NativeSource to SPIR-V words.
func CompileNative() ([]uint32, error) {
	spirvBytes, err := naga.Compile(NativeSource)
	if err != nil {
		return nil, fmt.Errorf("compile background shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("compile background shader: SPIR-V length %d is not word aligned", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return words, nil
}
