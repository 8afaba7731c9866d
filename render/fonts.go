package render

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"

	"quotereel/config"
)

// systemFontPaths is the fixed probe order for a usable bold system font.
var systemFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/ubuntu/Ubuntu-B.ttf",
	"/Library/Fonts/Arial Bold.ttf",
	"/System/Library/Fonts/Supplemental/Arial Bold.ttf",
	"C:\\Windows\\Fonts\\arialbd.ttf",
	"C:\\Windows\\Fonts\\segoeui.ttf",
}

// FontSet holds the two faces used on every frame.
type FontSet struct {
	Quote font.Face
	Title font.Face
}

// LoadFonts walks the known font paths and builds faces at the quote and
// title sizes. When no system font is found (or parsing fails) it falls back
// to the built-in bitmap face rather than failing the run.
func LoadFonts() FontSet {
	for _, path := range systemFontPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		fs, err := loadFaces(path)
		if err != nil {
			log.Printf("Font loading error for %s: %v", path, err)
			continue
		}
		log.Printf("Using system font: %s", path)
		return fs
	}

	log.Println("Using default font")
	return FontSet{Quote: basicfont.Face7x13, Title: basicfont.Face7x13}
}

func loadFaces(path string) (FontSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FontSet{}, fmt.Errorf("failed to read font file: %w", err)
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return FontSet{}, fmt.Errorf("failed to parse font: %w", err)
	}

	quote, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    config.QuoteFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return FontSet{}, fmt.Errorf("failed to create quote face: %w", err)
	}

	title, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    config.TitleFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return FontSet{}, fmt.Errorf("failed to create title face: %w", err)
	}

	return FontSet{Quote: quote, Title: title}, nil
}
