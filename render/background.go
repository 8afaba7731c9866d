package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"quotereel/config"
)

// colorPair is a top/bottom gradient pair.
type colorPair struct {
	top    color.RGBA
	bottom color.RGBA
}

// palette cycles by quote index. Dark pairs chosen so white text stays legible.
var palette = []colorPair{
	{color.RGBA{120, 0, 0, 255}, color.RGBA{40, 0, 0, 255}},    // dark red
	{color.RGBA{0, 0, 120, 255}, color.RGBA{0, 0, 40, 255}},    // dark blue
	{color.RGBA{80, 0, 100, 255}, color.RGBA{30, 0, 40, 255}},  // dark purple
	{color.RGBA{0, 80, 80, 255}, color.RGBA{0, 30, 30, 255}},   // dark teal
	{color.RGBA{100, 80, 0, 255}, color.RGBA{40, 30, 0, 255}},  // dark amber
	{color.RGBA{80, 80, 80, 255}, color.RGBA{30, 30, 30, 255}}, // dark gray
	{color.RGBA{0, 100, 0, 255}, color.RGBA{0, 40, 0, 255}},    // dark green
	{color.RGBA{100, 0, 100, 255}, color.RGBA{40, 0, 40, 255}}, // dark magenta
	{color.RGBA{100, 50, 0, 255}, color.RGBA{40, 20, 0, 255}},  // dark orange
}

const textureEllipses = 100

// Backgrounds renders the per-quote gradient rasters.
type Backgrounds struct {
	dir    string
	width  int
	height int
	strict bool
}

func NewBackgrounds(cfg config.Config) *Backgrounds {
	return &Backgrounds{
		dir:    cfg.ImagesDir,
		width:  config.VideoWidth,
		height: config.VideoHeight,
		strict: cfg.StrictImageCheck,
	}
}

// Render produces background_<index+1>.png and returns its path. It always
// returns a usable file: texture failures keep the plain gradient, and any
// other failure is replaced by a flat black placeholder.
func (b *Backgrounds) Render(index int) (string, error) {
	path := filepath.Join(b.dir, fmt.Sprintf("background_%d.png", index+1))

	pair := palette[index%len(palette)]
	log.Printf("Generating background %d: gradient %v to %v", index+1, pair.top, pair.bottom)

	img := b.gradient(pair)
	if err := writePNG(path, img); err != nil {
		log.Printf("Error generating background image: %v", err)
		return path, b.blackPlaceholder(path)
	}

	textured := b.addTexture(img)
	if err := writePNG(path, textured); err != nil {
		// The plain gradient is already on disk; keep it.
		log.Printf("Error adding texture: %v, using basic gradient", err)
	}

	if err := b.checkSize(path); err != nil {
		return path, err
	}
	return path, nil
}

// gradient interpolates the pair top-to-bottom, one color per row.
func (b *Backgrounds) gradient(pair colorPair) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		t := float64(y) / float64(b.height)
		row := color.RGBA{
			R: lerp(pair.top.R, pair.bottom.R, t),
			G: lerp(pair.top.G, pair.bottom.G, t),
			B: lerp(pair.top.B, pair.bottom.B, t),
			A: 255,
		}
		for x := 0; x < b.width; x++ {
			img.SetRGBA(x, y, row)
		}
	}
	return img
}

// addTexture scatters semi-transparent dark ellipses over a copy of img.
// Placement, size and opacity are randomized; everything else about the
// background is deterministic in the index.
func (b *Backgrounds) addTexture(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	copy(out.Pix, img.Pix)

	for i := 0; i < textureEllipses; i++ {
		cx := rand.Intn(b.width + 1)
		cy := rand.Intn(b.height + 1)
		size := rand.Intn(96) + 5
		alpha := uint8(rand.Intn(51))
		fillEllipse(out, cx, cy, size, alpha)
	}
	return out
}

// fillEllipse alpha-blends a black disc of the given radius onto img.
func fillEllipse(img *image.RGBA, cx, cy, r int, alpha uint8) {
	if alpha == 0 {
		return
	}
	bounds := img.Bounds()
	rr := r * r
	for y := cy - r; y <= cy+r; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		for x := cx - r; x <= cx+r; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy > rr {
				continue
			}
			c := img.RGBAAt(x, y)
			a := uint16(alpha)
			c.R = uint8(uint16(c.R) * (255 - a) / 255)
			c.G = uint8(uint16(c.G) * (255 - a) / 255)
			c.B = uint8(uint16(c.B) * (255 - a) / 255)
			img.SetRGBA(x, y, c)
		}
	}
}

// blackPlaceholder writes a flat black frame so downstream stages always
// have a file to work with.
func (b *Backgrounds) blackPlaceholder(path string) error {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	if err := writePNG(path, img); err != nil {
		return fmt.Errorf("failed to write placeholder background: %w", err)
	}
	log.Println("Created black placeholder image instead")
	return nil
}

// checkSize flags suspiciously small renders. Default policy is a warning;
// StrictImageCheck turns it into an error.
func (b *Backgrounds) checkSize(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("background not found after saving: %w", err)
	}
	if info.Size() < config.MinImageBytes {
		if b.strict {
			return fmt.Errorf("background %s is suspiciously small (%d bytes)", path, info.Size())
		}
		log.Printf("WARNING: background file is suspiciously small: %s (%d bytes)", path, info.Size())
	}
	return nil
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
