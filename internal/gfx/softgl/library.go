package softgl

import "github.com/go-gl/mathgl/mgl32"

// VertexFunc runs the vertex stage for one vertex: it maps the position
// attribute to a clip-space position and a single vec2 varying.
type VertexFunc func(position mgl32.Vec2) (clip mgl32.Vec4, varying mgl32.Vec2)

// FragmentFunc runs the fragment stage for one pixel. uniforms holds the
// current value of every uniform the stage declares, in declaration order.
type FragmentFunc func(varying mgl32.Vec2, uniforms []float32) mgl32.Vec4

// VertexStage is the Go equivalent of a vertex shader source.
type VertexStage struct {
	// Attribute is the name of the vec2 position attribute.
	Attribute string
	Shade     VertexFunc
}

// FragmentStage is the Go equivalent of a fragment shader source.
type FragmentStage struct {
	// Uniforms lists the float uniforms the stage reads. A name's index is
	// its uniform location.
	Uniforms []string
	Shade    FragmentFunc
}

// Library maps shader source text to the Go stage that implements it.
// Compiling a source that is not in the library fails.
type Library struct {
	Vertex   map[string]VertexStage
	Fragment map[string]FragmentStage
}

// Merge returns a library holding the stages of l and other; other wins on
// identical sources.
func (l Library) Merge(other Library) Library {
	out := Library{
		Vertex:   make(map[string]VertexStage, len(l.Vertex)+len(other.Vertex)),
		Fragment: make(map[string]FragmentStage, len(l.Fragment)+len(other.Fragment)),
	}
	for _, src := range []Library{l, other} {
		for k, v := range src.Vertex {
			out.Vertex[k] = v
		}
		for k, v := range src.Fragment {
			out.Fragment[k] = v
		}
	}
	return out
}
