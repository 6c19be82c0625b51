package render

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/opentype"

	"github.com/rendis/geopaint/internal/model"
)

var fontData = map[model.FontFamily][]byte{
	model.FontSans:      goregular.TTF,
	model.FontSansBold:  gobold.TTF,
	model.FontMono:      gomono.TTF,
	model.FontSmallCaps: gosmallcaps.TTF,
}

// fontSet parses each family once and caches faces per size.
type fontSet struct {
	mu     sync.Mutex
	parsed map[model.FontFamily]*opentype.Font
	faces  map[faceKey]font.Face
}

type faceKey struct {
	family model.FontFamily
	size   float64
}

func newFontSet() *fontSet {
	return &fontSet{
		parsed: make(map[model.FontFamily]*opentype.Font),
		faces:  make(map[faceKey]font.Face),
	}
}

func (fs *fontSet) face(family model.FontFamily, size float64) (font.Face, error) {
	if _, ok := fontData[family]; !ok {
		family = model.FontSans
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()

	key := faceKey{family, size}
	if f, ok := fs.faces[key]; ok {
		return f, nil
	}

	parsed, ok := fs.parsed[family]
	if !ok {
		var err error
		parsed, err = opentype.Parse(fontData[family])
		if err != nil {
			return nil, fmt.Errorf("parsing font %s: %w", family, err)
		}
		fs.parsed[family] = parsed
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating font face: %w", err)
	}
	fs.faces[key] = face
	return face, nil
}

func (fs *fontSet) Close() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	var first error
	for k, f := range fs.faces {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
		delete(fs.faces, k)
	}
	return first
}
