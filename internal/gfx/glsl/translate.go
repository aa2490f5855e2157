// Package glsl rewrites the GLSL ES 1.00 shaders used by WebGL into the
// desktop core-profile dialect.
package glsl

import (
	"regexp"
	"strings"

	"neo-background/internal/gfx"
)

// FragColor is the output variable that replaces gl_FragColor.
const FragColor = "fragColor"

var (
	versionLine   = regexp.MustCompile(`(?m)^\s*#version[^\n]*\n?`)
	precisionLine = regexp.MustCompile(`(?m)^\s*precision\s+\w+\s+\w+\s*;[^\n]*\n?`)
	attributeWord = regexp.MustCompile(`\battribute\b`)
	varyingWord   = regexp.MustCompile(`\bvarying\b`)
	fragColorWord = regexp.MustCompile(`\bgl_FragColor\b`)
)

// ToCore410 translates an ES 1.00 source for the given stage
// (gfx.VertexShader or gfx.FragmentShader) into "#version 410 core".
// Sources that already carry a #version directive are returned unchanged.
func ToCore410(src string, stage gfx.Enum) string {
	if versionLine.MatchString(src) {
		return src
	}

	// precision statements are legal but meaningless in core profile
	body := precisionLine.ReplaceAllString(src, "")

	var header strings.Builder
	header.WriteString("#version 410 core\n")

	switch stage {
	case gfx.VertexShader:
		body = attributeWord.ReplaceAllString(body, "in")
		body = varyingWord.ReplaceAllString(body, "out")
	case gfx.FragmentShader:
		body = varyingWord.ReplaceAllString(body, "in")
		if fragColorWord.MatchString(body) {
			body = fragColorWord.ReplaceAllString(body, FragColor)
			header.WriteString("out vec4 " + FragColor + ";\n")
		}
	}

	return header.String() + body
}
