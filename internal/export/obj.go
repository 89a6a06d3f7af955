// Package export writes generated meshes as Wavefront OBJ files and checks
// the result by reading it back with gwob.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/Faultbox/trefoil/internal/logger"
	"github.com/Faultbox/trefoil/pkg/tube"
)

var (
	ErrUnsupported = errors.New("export: primitive cannot be verified")
	ErrMismatch    = errors.New("export: file does not match mesh")
)

// Write emits the mesh as a single OBJ group. Positions, texture coordinates
// and normals are written when the mesh carries them; colours have no OBJ
// form and are dropped. Triangles become faces, lines become l records and
// points become p records.
func Write(w io.Writer, name string, m *tube.Mesh) error {
	bw := bufio.NewWriter(w)
	ow := objWriter{w: bw}

	ow.printf("# %d vertices, %d %v\n", m.VertexCount(), primitiveCount(m), m.Primitive())
	if name != "" {
		ow.printf("g %s\n", name)
	}

	n := m.VertexCount()
	for i := 0; i < n; i++ {
		p := m.Position(i)
		ow.record("v", p.X, p.Y, p.Z)
	}
	if m.Has(tube.UV) {
		for i := 0; i < n; i++ {
			uv := m.TexCoord(i)
			ow.record("vt", uv.X, uv.Y)
		}
	}
	if m.Has(tube.Normal) {
		for i := 0; i < n; i++ {
			nrm := m.Normal(i)
			ow.record("vn", nrm.X, nrm.Y, nrm.Z)
		}
	}

	ref := refFormat(m.Has(tube.UV), m.Has(tube.Normal))
	idx := m.Indices()
	switch m.Primitive() {
	case tube.Triangles:
		for k := 0; k+2 < len(idx); k += 3 {
			ow.printf("f %s %s %s\n", ref(idx[k]), ref(idx[k+1]), ref(idx[k+2]))
		}
	case tube.Lines:
		for k := 0; k+1 < len(idx); k += 2 {
			ow.printf("l %d %d\n", idx[k]+1, idx[k+1]+1)
		}
	case tube.Points:
		for _, i := range idx {
			ow.printf("p %d\n", i+1)
		}
	}

	if ow.err != nil {
		return ow.err
	}
	return bw.Flush()
}

// WriteFile writes the mesh to path, replacing any existing file.
func WriteFile(path, name string, m *tube.Mesh) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if err := Write(f, name, m); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	logger.Named("export").Info("mesh written",
		zap.String("path", path),
		zap.Int("vertices", m.VertexCount()),
		zap.Stringer("primitive", m.Primitive()),
		zap.Int("count", primitiveCount(m)))
	return nil
}

func primitiveCount(m *tube.Mesh) int {
	switch m.Primitive() {
	case tube.Triangles:
		return m.IndexCount() / 3
	case tube.Lines:
		return m.IndexCount() / 2
	default:
		return m.IndexCount()
	}
}

// refFormat returns the face vertex reference form for the streams present.
// OBJ indices are 1-based.
func refFormat(uv, normal bool) func(uint32) string {
	switch {
	case uv && normal:
		return func(i uint32) string { return fmt.Sprintf("%d/%d/%d", i+1, i+1, i+1) }
	case normal:
		return func(i uint32) string { return fmt.Sprintf("%d//%d", i+1, i+1) }
	case uv:
		return func(i uint32) string { return fmt.Sprintf("%d/%d", i+1, i+1) }
	default:
		return func(i uint32) string { return strconv.FormatUint(uint64(i)+1, 10) }
	}
}

// objWriter keeps the first write error so the emit loops stay flat.
type objWriter struct {
	w   *bufio.Writer
	err error
	buf []byte
}

func (o *objWriter) printf(format string, args ...any) {
	if o.err != nil {
		return
	}
	_, o.err = fmt.Fprintf(o.w, format, args...)
}

// record writes a keyword followed by shortest round-trip float32 values.
func (o *objWriter) record(keyword string, values ...float32) {
	if o.err != nil {
		return
	}
	o.buf = append(o.buf[:0], keyword...)
	for _, v := range values {
		o.buf = append(o.buf, ' ')
		o.buf = strconv.AppendFloat(o.buf, float64(v), 'g', -1, 32)
	}
	o.buf = append(o.buf, '\n')
	_, o.err = o.w.Write(o.buf)
}
