package x11

import (
	"errors"
	"math"

	"github.com/ItsNotGoodName/touchwm/internal/drawing"
	"github.com/ItsNotGoodName/touchwm/internal/geometry"
	"github.com/jezek/xgb/xproto"
)

var errNoPixels = errors.New("buffer has no pixel data")

type texture struct {
	pix  []byte
	size geometry.Size
}

func (t *texture) Size() geometry.Size {
	return t.size
}

func newRenderer(size geometry.Size) *renderer {
	r := &renderer{}
	r.resize(size)
	return r
}

// renderer is a software renderer, textures are RGBA pixel slices and frames
// composite into a retained framebuffer.
type renderer struct {
	framebuffer []byte
	size        geometry.Size
}

// resize reallocates the framebuffer, reporting whether its content was
// lost.
func (r *renderer) resize(size geometry.Size) bool {
	if size == r.size {
		return false
	}
	r.size = size
	r.framebuffer = make([]byte, size.W*size.H*4)
	return true
}

func (r *renderer) ImportBuffer(buffer drawing.Buffer, damage []geometry.Rect) (drawing.GPUTexture, error) {
	pix := buffer.Bytes()
	if pix == nil {
		return nil, errNoPixels
	}

	size := buffer.Dimensions()
	t := &texture{
		pix:  make([]byte, size.W*size.H*4),
		size: size,
	}
	copy(t.pix, pix)
	return t, nil
}

func (r *renderer) CreateTexture(rgba []byte, width, height int) (drawing.GPUTexture, error) {
	t := &texture{
		pix:  make([]byte, width*height*4),
		size: geometry.Size{W: width, H: height},
	}
	copy(t.pix, rgba)
	return t, nil
}

type frame struct {
	backend *Backend
}

func (f *frame) DrawTexture(gpu drawing.GPUTexture, src geometry.Rect, dst geometry.RectF, damage []geometry.RectF, transform geometry.Transform, alpha float64) error {
	t, ok := gpu.(*texture)
	if !ok {
		return errors.New("foreign texture")
	}

	r := f.backend.renderer
	for _, d := range damage {
		f.blit(r, t, src, dst, d, transform, alpha)
	}
	return nil
}

func (f *frame) blit(r *renderer, t *texture, src geometry.Rect, dst geometry.RectF, clip geometry.RectF, transform geometry.Transform, alpha float64) {
	if dst.Size.IsEmpty() || src.Size.IsEmpty() {
		return
	}

	x0 := int(math.Max(math.Max(dst.Loc.X, clip.Loc.X), 0))
	y0 := int(math.Max(math.Max(dst.Loc.Y, clip.Loc.Y), 0))
	x1 := int(math.Min(math.Min(dst.Loc.X+dst.Size.W, clip.Loc.X+clip.Size.W), float64(r.size.W)))
	y1 := int(math.Min(math.Min(dst.Loc.Y+dst.Size.H, clip.Loc.Y+clip.Size.H), float64(r.size.H)))

	for y := y0; y < y1; y++ {
		v := (float64(y) + 0.5 - dst.Loc.Y) / dst.Size.H
		for x := x0; x < x1; x++ {
			u := (float64(x) + 0.5 - dst.Loc.X) / dst.Size.W

			su, sv := transformUV(u, v, transform)
			sx := src.Loc.X + int(su*float64(src.Size.W))
			sy := src.Loc.Y + int(sv*float64(src.Size.H))
			if sx < 0 || sy < 0 || sx >= t.size.W || sy >= t.size.H {
				continue
			}

			s := t.pix[(sy*t.size.W+sx)*4:]
			d := r.framebuffer[(y*r.size.W+x)*4:]
			a := alpha * float64(s[3]) / 255
			d[0] = byte(float64(s[0])*a + float64(d[0])*(1-a))
			d[1] = byte(float64(s[1])*a + float64(d[1])*(1-a))
			d[2] = byte(float64(s[2])*a + float64(d[2])*(1-a))
			d[3] = 255
		}
	}
}

// transformUV maps normalized destination coordinates back into the buffer.
func transformUV(u, v float64, transform geometry.Transform) (float64, float64) {
	switch transform {
	case geometry.Rotate90:
		return v, 1 - u
	case geometry.Rotate180:
		return 1 - u, 1 - v
	case geometry.Rotate270:
		return 1 - v, u
	case geometry.Flipped:
		return 1 - u, v
	case geometry.Flipped90:
		return v, u
	case geometry.Flipped180:
		return u, 1 - v
	case geometry.Flipped270:
		return 1 - v, 1 - u
	default:
		return u, v
	}
}

// Submit pushes the framebuffer to the X window. PutImage is limited to
// requests under the server maximum so rows are sent in chunks.
func (f *frame) Submit(damage []geometry.RectF) error {
	b := f.backend
	r := b.renderer

	bgra := make([]byte, len(r.framebuffer))
	for i := 0; i < len(bgra); i += 4 {
		bgra[i] = r.framebuffer[i+2]
		bgra[i+1] = r.framebuffer[i+1]
		bgra[i+2] = r.framebuffer[i]
		bgra[i+3] = 255
	}

	rowsPerPut := (1 << 16) / (r.size.W*4 + 1)
	if rowsPerPut < 1 {
		rowsPerPut = 1
	}
	for y := 0; y < r.size.H; y += rowsPerPut {
		rows := rowsPerPut
		if y+rows > r.size.H {
			rows = r.size.H - y
		}
		if err := xproto.PutImageChecked(b.conn, xproto.ImageFormatZPixmap,
			xproto.Drawable(b.wid), b.gc,
			uint16(r.size.W), uint16(rows), 0, int16(y),
			0, b.depth, bgra[y*r.size.W*4:(y+rows)*r.size.W*4]).Check(); err != nil {
			return err
		}
	}
	return nil
}
