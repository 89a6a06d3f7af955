// Package shader compiles GLSL programs and keeps them in a library keyed by
// their source pair.
package shader

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/trefoil/internal/assets"
	"github.com/Faultbox/trefoil/internal/logger"
)

// Key names a program by its vertex and fragment source files.
type Key struct {
	Vertex   string
	Fragment string
}

func (k Key) String() string {
	return k.Vertex + "+" + k.Fragment
}

// Program is a linked program with cached attribute and uniform locations.
type Program struct {
	ID       uint32
	Key      Key
	uniforms map[string]int32
	attribs  map[string]int32
}

// Uniform returns the location of a uniform, or -1 if the program does not
// use it.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.ID, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

// Attrib returns the location of a vertex attribute, or -1 if the program
// does not use it.
func (p *Program) Attrib(name string) int32 {
	if loc, ok := p.attribs[name]; ok {
		return loc
	}
	loc := gl.GetAttribLocation(p.ID, gl.Str(name+"\x00"))
	p.attribs[name] = loc
	return loc
}

// Library compiles programs on first use and deletes them all on Close.
type Library struct {
	fsys  fs.FS
	table *assets.Table[Key, *Program]
}

// NewLibrary creates a library that reads sources from fsys.
func NewLibrary(fsys fs.FS) *Library {
	return &Library{
		fsys: fsys,
		table: assets.NewTable[Key, *Program](func(p *Program) {
			gl.DeleteProgram(p.ID)
		}),
	}
}

// Load returns the program for a vertex/fragment pair, compiling it once.
func (l *Library) Load(vertex, fragment string) (*Program, error) {
	key := Key{Vertex: vertex, Fragment: fragment}
	return l.table.GetOrLoad(key, func() (*Program, error) {
		vsrc, fsrc, err := Sources(l.fsys, key)
		if err != nil {
			return nil, err
		}
		id, err := CompileProgram(vsrc, fsrc)
		if err != nil {
			return nil, fmt.Errorf("program %s: %w", key, err)
		}
		logger.Debug("shader program compiled",
			zap.Stringer("program", key),
			zap.Uint32("id", id),
		)
		return &Program{
			ID:       id,
			Key:      key,
			uniforms: make(map[string]int32),
			attribs:  make(map[string]int32),
		}, nil
	})
}

// Close deletes every compiled program.
func (l *Library) Close() {
	hits, misses := l.table.Stats()
	logger.Debug("closing shader library", zap.Int("hits", hits), zap.Int("programs", misses))
	l.table.Close()
}

// Sources reads both source files of a program.
func Sources(fsys fs.FS, key Key) (vertex, fragment string, err error) {
	vb, err := fs.ReadFile(fsys, key.Vertex)
	if err != nil {
		return "", "", fmt.Errorf("vertex shader: %w", err)
	}
	fb, err := fs.ReadFile(fsys, key.Fragment)
	if err != nil {
		return "", "", fmt.Errorf("fragment shader: %w", err)
	}
	return string(vb), string(fb), nil
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vert, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vert)

	frag, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(frag)

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) { gl.GetProgramInfoLog(program, logLen, nil, buf) })
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", log)
	}
	return program, nil
}

func compileShader(source string, shaderType uint32, stage string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) { gl.GetShaderInfoLog(shader, logLen, nil, buf) })
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", stage, log)
	}
	return shader, nil
}

func infoLog(length int32, read func(*uint8)) string {
	if length <= 0 {
		return "(no log)"
	}
	buf := make([]uint8, length)
	read(&buf[0])
	return strings.TrimRight(string(buf), "\x00\n")
}
