// Package gpu implements the render contracts on OpenGL 4.1 core.
package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/trefoil/internal/engine/render"
	"github.com/Faultbox/trefoil/internal/engine/shader"
	"github.com/Faultbox/trefoil/internal/logger"
	"github.com/Faultbox/trefoil/pkg/math"
	"github.com/Faultbox/trefoil/pkg/tube"
)

// Config holds device settings.
type Config struct {
	Width      int
	Height     int
	ClearColor [4]float32
}

// Device owns the GL buffers uploaded through it and draws with the current
// program. It must be created after the GL context.
type Device struct {
	config Config
	log    *zap.Logger

	vao        uint32
	buffers    []uint32
	indices    []uint32
	components map[render.BufferHandle]int32

	program *shader.Program
	enabled []uint32
	missing map[string]bool
}

var (
	_ render.BufferSink = (*Device)(nil)
	_ render.Presenter  = (*Device)(nil)
)

// New initialises OpenGL and sets up the default state.
func New(cfg Config) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	d := &Device{
		config:     cfg,
		log:        logger.Named("gpu"),
		components: make(map[render.BufferHandle]int32),
		missing:    make(map[string]bool),
	}
	d.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	// Core profile requires a bound vertex array for every draw.
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	return d, nil
}

// Close deletes every buffer created through the device.
func (d *Device) Close() {
	d.log.Info("closing device",
		zap.Int("buffers", len(d.buffers)),
		zap.Int("index_buffers", len(d.indices)),
	)
	if len(d.buffers) > 0 {
		gl.DeleteBuffers(int32(len(d.buffers)), &d.buffers[0])
	}
	if len(d.indices) > 0 {
		gl.DeleteBuffers(int32(len(d.indices)), &d.indices[0])
	}
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
	}
	d.buffers, d.indices, d.vao = nil, nil, 0
}

// Resize updates the viewport.
func (d *Device) Resize(width, height int) {
	d.config.Width = width
	d.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	d.log.Debug("viewport resized", zap.Int("width", width), zap.Int("height", height))
}

// Begin clears the frame.
func (d *Device) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows.
func (d *Device) ReadPixels() (pixels []byte, width, height int) {
	width, height = d.config.Width, d.config.Height
	pixels = make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels, width, height
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

// SetCulling turns back-face culling on for closed surfaces and off for
// everything else.
func (d *Device) SetCulling(on bool) {
	if on {
		gl.Enable(gl.CULL_FACE)
	} else {
		gl.Disable(gl.CULL_FACE)
	}
}

// UseProgram makes p the target of subsequent Bind, Set and Draw calls.
func (d *Device) UseProgram(p *shader.Program) {
	d.program = p
	gl.UseProgram(p.ID)
}

// CreateBuffer uploads one vertex attribute stream.
func (d *Device) CreateBuffer(data []float32, components int) (render.BufferHandle, error) {
	if components < 1 || components > 4 {
		return 0, fmt.Errorf("buffer with %d components per vertex", components)
	}
	if len(data) == 0 || len(data)%components != 0 {
		return 0, fmt.Errorf("buffer of %d floats is not a whole number of %d-component vertices", len(data), components)
	}

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	h := render.BufferHandle(vbo)
	d.buffers = append(d.buffers, vbo)
	d.components[h] = int32(components)
	return h, nil
}

// CreateIndexBuffer uploads an index list.
func (d *Device) CreateIndexBuffer(indices []uint32) (render.IndexHandle, error) {
	if len(indices) == 0 {
		return 0, fmt.Errorf("empty index buffer")
	}

	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	d.indices = append(d.indices, ebo)
	return render.IndexHandle(ebo), nil
}

// Bind connects a buffer to the named attribute of the current program.
func (d *Device) Bind(name string, buf render.BufferHandle) {
	loc := d.program.Attrib(name)
	if loc < 0 {
		d.warnMissing("attribute", name)
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(buf))
	gl.VertexAttribPointerWithOffset(uint32(loc), d.components[buf], gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(uint32(loc))
	d.enabled = append(d.enabled, uint32(loc))
}

// SetMat4 sets a matrix uniform.
func (d *Device) SetMat4(name string, m math.Mat4) {
	if loc := d.uniform(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, m.Ptr())
	}
}

// SetVec3 sets a vec3 uniform.
func (d *Device) SetVec3(name string, v math.Vec3) {
	if loc := d.uniform(name); loc >= 0 {
		gl.Uniform3f(loc, v.X, v.Y, v.Z)
	}
}

// SetVec4 sets a vec4 uniform.
func (d *Device) SetVec4(name string, v math.Vec4) {
	if loc := d.uniform(name); loc >= 0 {
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	}
}

// SetInt sets an int or sampler uniform.
func (d *Device) SetInt(name string, v int32) {
	if loc := d.uniform(name); loc >= 0 {
		gl.Uniform1i(loc, v)
	}
}

// SetFloat sets a float uniform.
func (d *Device) SetFloat(name string, v float32) {
	if loc := d.uniform(name); loc >= 0 {
		gl.Uniform1f(loc, v)
	}
}

// Draw issues an indexed draw and disables the attributes bound for it.
func (d *Device) Draw(p tube.Primitive, idx render.IndexHandle, count int) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(idx))
	gl.DrawElementsWithOffset(Mode(p), int32(count), gl.UNSIGNED_INT, 0)

	for _, loc := range d.enabled {
		gl.DisableVertexAttribArray(loc)
	}
	d.enabled = d.enabled[:0]
}

// Mode maps a mesh primitive to its GL draw mode.
func Mode(p tube.Primitive) uint32 {
	switch p {
	case tube.Points:
		return gl.POINTS
	case tube.Lines:
		return gl.LINES
	default:
		return gl.TRIANGLES
	}
}

func (d *Device) uniform(name string) int32 {
	loc := d.program.Uniform(name)
	if loc < 0 {
		d.warnMissing("uniform", name)
	}
	return loc
}

// warnMissing logs a name the current program does not use, once per
// program and name.
func (d *Device) warnMissing(kind, name string) {
	key := d.program.Key.String() + "/" + name
	if d.missing[key] {
		return
	}
	d.missing[key] = true
	d.log.Debug("name not used by program",
		zap.String("kind", kind),
		zap.String("name", name),
		zap.Stringer("program", d.program.Key),
	)
}
