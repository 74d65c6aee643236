package export

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/piwi3910/cento/internal/model"
)

// WriteOBJ writes one quad face per tile, clipped to bounds. Each face is
// preceded by "usemtl space" or "usemtl solid" and its four corners run
// lower-left, upper-left, upper-right, lower-right.
func WriteOBJ(w io.Writer, snap model.Snapshot, bounds model.Rect) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 64)
	vertex := func(x, y int32) {
		buf = append(buf[:0], "v "...)
		buf = strconv.AppendInt(buf, int64(x), 10)
		buf = append(buf, ' ')
		buf = strconv.AppendInt(buf, int64(y), 10)
		buf = append(buf, '\n')
		bw.Write(buf)
	}

	i := 1
	for _, rec := range snap {
		r := rec.Rect.Clip(bounds)
		if rec.Body.IsSpace() {
			bw.WriteString("usemtl space\n")
		} else {
			bw.WriteString("usemtl solid\n")
		}
		vertex(r.LL.X, r.LL.Y)
		vertex(r.LL.X, r.UR.Y)
		vertex(r.UR.X, r.UR.Y)
		vertex(r.UR.X, r.LL.Y)

		buf = append(buf[:0], 'f')
		for k := 0; k < 4; k++ {
			buf = append(buf, ' ')
			buf = strconv.AppendInt(buf, int64(i+k), 10)
		}
		buf = append(buf, '\n')
		bw.Write(buf)
		i += 4
	}
	return bw.Flush()
}

// ExportOBJ writes rep as an OBJ mesh.
func ExportOBJ(path string, rep Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteOBJ(f, rep.Snapshot, rep.Bounds()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
