package compose

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFontFamily selects the bundled Go fonts
const DefaultFontFamily = "go"

type fontKind int

const (
	regularFont fontKind = iota
	boldFont
	monoFont
	casualFont
)

var bundledFonts = map[fontKind][]byte{
	regularFont: goregular.TTF,
	boldFont:    gobold.TTF,
	monoFont:    gomonobold.TTF,
	casualFont:  gomediumitalic.TTF,
}

// fontCache parses each font once. Faces are created per render since a
// truetype face is not safe for concurrent use.
type fontCache struct {
	mu     sync.Mutex
	parsed map[string]*truetype.Font
}

func newFontCache() *fontCache {
	return &fontCache{parsed: make(map[string]*truetype.Font)}
}

// font returns the parsed font for a kind. A family naming a .ttf file
// replaces the regular and bold kinds; any other family uses the Go fonts.
// Go Bold stands in for the condensed comic face unless a .ttf is set.
func (c *fontCache) font(family string, kind fontKind) (*truetype.Font, error) {
	custom := strings.HasSuffix(strings.ToLower(family), ".ttf") && (kind == regularFont || kind == boldFont)

	key := fmt.Sprintf("go:%d", kind)
	if custom {
		key = family
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if f, ok := c.parsed[key]; ok {
		return f, nil
	}

	data := bundledFonts[kind]
	if custom {
		b, err := os.ReadFile(family)
		if err != nil {
			return nil, fmt.Errorf("failed to read font: %w", err)
		}
		data = b
	}

	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", key, err)
	}
	c.parsed[key] = f
	return f, nil
}

func (c *fontCache) face(family string, kind fontKind, size float64) (font.Face, error) {
	f, err := c.font(family, kind)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// faceSet holds every face one render needs
type faceSet struct {
	text   font.Face // caption and layout measurement
	comic  font.Face
	mono   font.Face
	casual font.Face
	icon   font.Face
	label  font.Face
	detail font.Face
	stamp  font.Face
	glyphs *truetype.Font
}

func (c *fontCache) faceSet(family string, size float64) (*faceSet, error) {
	fs := &faceSet{}
	specs := []struct {
		dst    *font.Face
		family string
		kind   fontKind
		size   float64
	}{
		{&fs.text, family, boldFont, size},
		{&fs.comic, family, boldFont, 22},
		{&fs.mono, "", monoFont, 22},
		{&fs.casual, "", casualFont, 20},
		{&fs.icon, "", regularFont, 20},
		{&fs.label, "", boldFont, 12},
		{&fs.detail, "", regularFont, 10},
		{&fs.stamp, "", regularFont, 12},
	}

	for _, spec := range specs {
		face, err := c.face(spec.family, spec.kind, spec.size)
		if err != nil {
			return nil, err
		}
		*spec.dst = face
	}

	glyphs, err := c.font(family, boldFont)
	if err != nil {
		return nil, err
	}
	fs.glyphs = glyphs
	return fs, nil
}

// renderable drops runes the caption font has no glyph for
func renderable(f *truetype.Font, s string) string {
	filtered := strings.Map(func(r rune) rune {
		if r == ' ' {
			return r
		}
		if f.Index(r) == 0 {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(filtered), " ")
}
