package render

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"quotereel/config"
)

// enumPrefix matches leading list markers like "1. " or "3) " that chat
// models tend to prepend.
var enumPrefix = regexp.MustCompile(`^\d+[.)]\s*`)

// overlayAlpha is the uniform dark layer composited over the background so
// white text stays readable on the brighter gradients.
const overlayAlpha = 100

// ParseQuote splits a raw line into quote text and attribution. The split is
// on the first " - "; a missing attribution becomes "Unknown". Enumeration
// prefixes are stripped from the quote text.
func ParseQuote(raw string) (text, title string) {
	parts := strings.SplitN(raw, " - ", 2)
	text = strings.TrimSpace(parts[0])
	title = "Unknown"
	if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
		title = strings.TrimSpace(parts[1])
	}
	text = enumPrefix.ReplaceAllString(text, "")
	return text, title
}

// WrapWords greedily packs words into lines no longer than budget characters.
// A single word longer than the budget gets its own line, unbroken.
func WrapWords(text string, budget int) []string {
	var lines []string
	var current []string

	for _, word := range strings.Fields(text) {
		candidate := strings.Join(append(append([]string{}, current...), word), " ")
		if len(candidate) <= budget {
			current = append(current, word)
			continue
		}
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
			current = []string{word}
		} else {
			lines = append(lines, word)
		}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}

// Frames burns quote text onto background images.
type Frames struct {
	dir    string
	width  int
	height int
	fonts  FontSet
}

func NewFrames(cfg config.Config, fonts FontSet) *Frames {
	return &Frames{
		dir:    cfg.FramesDir,
		width:  config.VideoWidth,
		height: config.VideoHeight,
		fonts:  fonts,
	}
}

// Compose renders frame_<index+1>.png from a background and a raw quote.
// It always returns exactly one frame path: any composition failure is
// replaced by a black frame carrying the error text, preserving frame order.
func (f *Frames) Compose(backgroundPath, rawQuote string, index int) string {
	path := filepath.Join(f.dir, fmt.Sprintf("frame_%d.png", index+1))

	if err := f.compose(path, backgroundPath, rawQuote); err != nil {
		log.Printf("Error creating frame %d: %v", index+1, err)
		f.errorFrame(path, err)
	} else {
		log.Printf("Created frame %d", index+1)
	}
	return path
}

func (f *Frames) compose(path, backgroundPath, rawQuote string) error {
	text, title := ParseQuote(rawQuote)

	canvas := f.loadBackground(backgroundPath)
	f.darken(canvas)

	// Quote block starts a quarter of the way down, one line per pitch.
	y := f.height / 4
	for _, line := range WrapWords(text, config.MaxCharsPerLine) {
		f.drawCentered(canvas, line, f.fonts.Quote, y)
		y += config.LinePitch
	}

	// Attribution sits at three quarters height.
	f.drawCentered(canvas, "- "+title, f.fonts.Title, f.height*3/4)

	if err := writePNG(path, canvas); err != nil {
		return fmt.Errorf("failed to save frame: %w", err)
	}
	return nil
}

// loadBackground decodes and, if needed, rescales the background. Any load
// problem degrades to a plain black canvas rather than failing the frame.
func (f *Frames) loadBackground(path string) *image.RGBA {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("Background error: %v. Using plain black background.", err)
		return f.blackCanvas()
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		log.Printf("Background error: %v. Using plain black background.", err)
		return f.blackCanvas()
	}

	canvas := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	if src.Bounds().Dx() == f.width && src.Bounds().Dy() == f.height {
		xdraw.Draw(canvas, canvas.Bounds(), src, src.Bounds().Min, xdraw.Src)
	} else {
		xdraw.CatmullRom.Scale(canvas, canvas.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	}
	return canvas
}

func (f *Frames) blackCanvas() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return img
}

// darken composites a uniform translucent black layer over the canvas.
func (f *Frames) darken(img *image.RGBA) {
	overlay := image.NewUniform(color.RGBA{0, 0, 0, overlayAlpha})
	xdraw.Draw(img, img.Bounds(), overlay, image.Point{}, xdraw.Over)
}

// drawCentered draws one line of white text horizontally centered at baseline y.
func (f *Frames) drawCentered(img *image.RGBA, text string, face font.Face, y int) {
	width := font.MeasureString(face, text).Ceil()
	x := (f.width - width) / 2
	if x < 0 {
		x = 0
	}

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// errorFrame writes a black frame with the error text so the video keeps its
// slot count even when a composition blows up.
func (f *Frames) errorFrame(path string, cause error) {
	img := f.blackCanvas()
	f.drawCentered(img, fmt.Sprintf("Error: %v", cause), f.fonts.Title, f.height/2)
	if err := writePNG(path, img); err != nil {
		log.Printf("Failed to write error frame %s: %v", path, err)
	}
}
