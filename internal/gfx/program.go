package gfx

import (
	"errors"
	"fmt"
)

// CompileProgram compiles a vertex and fragment shader and links them into a
// program. The full create/compile/attach/link sequence is always issued so
// that a broken source still leaves a (non-functional) program behind; any
// compile or link diagnostics are returned joined together.
func CompileProgram(ctx Context, vertexSrc, fragmentSrc string) (Program, error) {
	vertexShader := ctx.CreateShader(VertexShader)
	fragmentShader := ctx.CreateShader(FragmentShader)

	var errs []error
	if err := compileShader(ctx, vertexShader, vertexSrc); err != nil {
		errs = append(errs, fmt.Errorf("vertex shader: %w", err))
	}
	if err := compileShader(ctx, fragmentShader, fragmentSrc); err != nil {
		errs = append(errs, fmt.Errorf("fragment shader: %w", err))
	}

	program := ctx.CreateProgram()
	ctx.AttachShader(program, vertexShader)
	ctx.AttachShader(program, fragmentShader)
	ctx.LinkProgram(program)

	if ok, log := ctx.ProgramLinked(program); !ok {
		errs = append(errs, fmt.Errorf("failed to link program: %s", log))
	}

	// shaders can be deleted after linking
	ctx.DeleteShader(vertexShader)
	ctx.DeleteShader(fragmentShader)

	return program, errors.Join(errs...)
}

func compileShader(ctx Context, shader Shader, source string) error {
	ctx.ShaderSource(shader, source)
	ctx.CompileShader(shader)

	if ok, log := ctx.ShaderCompiled(shader); !ok {
		return fmt.Errorf("failed to compile shader: %s", log)
	}
	return nil
}
