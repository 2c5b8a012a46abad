package scene

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

// MaxTextureDim is the downscale clamp applied on load. Source art larger
// than this on either axis is resized down to fit, preserving aspect.
const MaxTextureDim = 4096

// Texture holds CPU-side pixel data for a 2D texture.
// GLID is set by the OpenGL backend after upload; do not access directly.
type Texture struct {
	Name   string
	Width  int
	Height int
	// Pixels in RGBA8 format (4 bytes per pixel, row-major, top-to-bottom).
	Pixels []byte
	// GLID is the OpenGL texture object ID, set by opengl.UploadTexture.
	GLID uint32
}

// LoadTexture reads a PNG or JPEG file from disk and returns a CPU-side
// Texture. The image is converted to RGBA8, flipped vertically so row 0 is
// the bottom (matching the GL texture coordinate origin), and downscaled
// if it exceeds MaxTextureDim.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}

	rgba := toRGBA(img)
	if rgba.Rect.Dx() > MaxTextureDim || rgba.Rect.Dy() > MaxTextureDim {
		rgba = downscale(rgba, MaxTextureDim)
	}

	tex := &Texture{
		Name:   path,
		Width:  rgba.Rect.Dx(),
		Height: rgba.Rect.Dy(),
		Pixels: rgba.Pix,
	}
	tex.FlipVertical()
	return tex, nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(rgba, rgba.Rect, img, bounds.Min, xdraw.Src)
	return rgba
}

func downscale(src *image.RGBA, maxDim int) *image.RGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	scale := float64(maxDim) / float64(w)
	if h > w {
		scale = float64(maxDim) / float64(h)
	}
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.CatmullRom.Scale(dst, dst.Rect, src, src.Rect, xdraw.Src, nil)
	fmt.Printf("texture: downscaled %dx%d -> %dx%d\n", w, h, dw, dh)
	return dst
}

// FlipVertical reverses the pixel rows in place.
func (t *Texture) FlipVertical() {
	rowLen := t.Width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < t.Height/2; y++ {
		top := t.Pixels[y*rowLen : (y+1)*rowLen]
		bottom := t.Pixels[(t.Height-1-y)*rowLen : (t.Height-y)*rowLen]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}

// NewSolidTexture creates a 1x1 texture with the given RGBA color values (0–255).
func NewSolidTexture(name string, r, g, b, a uint8) *Texture {
	return &Texture{
		Name:   name,
		Width:  1,
		Height: 1,
		Pixels: []byte{r, g, b, a},
	}
}

// Cubemap holds the six faces of a skybox texture in the GL binding order:
// +X, -X, +Y, -Y, +Z, -Z.
type Cubemap struct {
	Name  string
	Faces [6]*Texture
	// GLID is set by opengl.UploadCubemap.
	GLID uint32
}

var cubemapFaceNames = [6]string{"px", "nx", "py", "ny", "pz", "nz"}

// TextureBank resolves texture names against a root directory and caches
// loads, so scene data can refer to textures by bare name.
type TextureBank struct {
	Root     string
	textures map[string]*Texture
}

func NewTextureBank(root string) *TextureBank {
	return &TextureBank{
		Root:     root,
		textures: make(map[string]*Texture),
	}
}

// Load resolves name to "<root>/<name>.png" and caches the result. A load
// failure is reported once and a magenta placeholder is cached in its
// place so a missing file cannot fail a frame.
func (b *TextureBank) Load(name string) *Texture {
	if tex, ok := b.textures[name]; ok {
		return tex
	}
	tex, err := LoadTexture(filepath.Join(b.Root, name+".png"))
	if err != nil {
		fmt.Printf("texture bank: %v\n", err)
		tex = NewSolidTexture(name, 255, 0, 255, 255)
	}
	tex.Name = name
	b.textures[name] = tex
	return tex
}

// Each calls fn for every cached texture, for batch GPU upload.
func (b *TextureBank) Each(fn func(*Texture)) {
	for _, tex := range b.textures {
		fn(tex)
	}
}

// LoadCubemap reads the six face images "<root>/cubemap/<name>/<face>.png"
// with face in px, nx, py, ny, pz, nz. Cubemap faces are sampled in the
// GL convention directly, so they are not flipped like 2D textures.
func LoadCubemap(root, name string) (*Cubemap, error) {
	cm := &Cubemap{Name: name}
	for i, face := range cubemapFaceNames {
		path := filepath.Join(root, "cubemap", name, face+".png")
		tex, err := LoadTexture(path)
		if err != nil {
			return nil, fmt.Errorf("cubemap %q face %s: %w", name, face, err)
		}
		// undo the 2D-orientation flip from LoadTexture
		tex.FlipVertical()
		cm.Faces[i] = tex
	}
	return cm, nil
}
