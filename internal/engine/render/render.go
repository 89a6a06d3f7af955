// Package render defines the narrow contracts between generated geometry and
// the graphics backend, and the Object that connects the two.
package render

import (
	"fmt"

	"github.com/Faultbox/trefoil/pkg/math"
	"github.com/Faultbox/trefoil/pkg/tube"
)

// BufferHandle identifies an uploaded vertex attribute buffer.
type BufferHandle uint32

// IndexHandle identifies an uploaded index buffer.
type IndexHandle uint32

// BufferSink accepts vertex and index data for upload.
type BufferSink interface {
	CreateBuffer(data []float32, components int) (BufferHandle, error)
	CreateIndexBuffer(indices []uint32) (IndexHandle, error)
}

// Presenter binds buffers and uniforms by name and issues draws.
// Names that the active program does not use are ignored.
type Presenter interface {
	Bind(name string, buf BufferHandle)
	SetMat4(name string, m math.Mat4)
	SetVec3(name string, v math.Vec3)
	SetVec4(name string, v math.Vec4)
	SetInt(name string, v int32)
	Draw(p tube.Primitive, idx IndexHandle, count int)
}

// Geometry is anything that exposes vertex streams and indices the way
// tube.Mesh does.
type Geometry interface {
	Primitive() tube.Primitive
	Has(a tube.Attribute) bool
	Stream(a tube.Attribute) []float32
	Indices() []uint32
}

// Shader attribute and uniform names shared by every program.
const (
	AttrPosition = "a_position"
	AttrNormal   = "a_normal"
	AttrColour   = "a_colour"
	AttrTexCoord = "a_texcoord"

	UniformModel      = "u_modelMatrix"
	UniformNormal     = "u_normalMatrix"
	UniformView       = "u_viewMatrix"
	UniformProjection = "u_projectionMatrix"
)

var attributeNames = map[tube.Attribute]string{
	tube.Position: AttrPosition,
	tube.Normal:   AttrNormal,
	tube.Colour:   AttrColour,
	tube.UV:       AttrTexCoord,
}

type binding struct {
	name string
	buf  BufferHandle
}

// Object is geometry that has been uploaded once and can be drawn any number
// of times.
type Object struct {
	name      string
	primitive tube.Primitive
	bindings  []binding
	indices   IndexHandle
	count     int
}

// Upload copies the geometry's streams and indices into the sink.
func Upload(sink BufferSink, name string, g Geometry) (*Object, error) {
	o := &Object{
		name:      name,
		primitive: g.Primitive(),
	}

	for _, a := range tube.Attributes {
		if !g.Has(a) {
			continue
		}
		buf, err := sink.CreateBuffer(g.Stream(a), a.Components())
		if err != nil {
			return nil, fmt.Errorf("%s: uploading %v: %w", name, a, err)
		}
		o.bindings = append(o.bindings, binding{name: attributeNames[a], buf: buf})
	}

	indices := g.Indices()
	idx, err := sink.CreateIndexBuffer(indices)
	if err != nil {
		return nil, fmt.Errorf("%s: uploading indices: %w", name, err)
	}
	o.indices = idx
	o.count = len(indices)
	return o, nil
}

// Name returns the name the object was uploaded under.
func (o *Object) Name() string {
	return o.name
}

// Count returns the number of indices drawn.
func (o *Object) Count() int {
	return o.count
}

// Draw binds the object's streams, sets its model and normal matrices and
// issues a single draw. Any other uniforms must already be set.
func (o *Object) Draw(p Presenter, model, normal math.Mat4) {
	for _, b := range o.bindings {
		p.Bind(b.name, b.buf)
	}
	p.SetMat4(UniformModel, model)
	p.SetMat4(UniformNormal, normal)
	p.Draw(o.primitive, o.indices, o.count)
}
