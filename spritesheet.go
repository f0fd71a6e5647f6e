package flat2d

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// TexCoords is a normalized UV rectangle. V grows upward: the top row of the
// image is v=1 and the bottom row v=0.
type TexCoords struct {
	Left, Right, Bottom, Top float32
}

// UnitTexCoords covers the whole texture.
var UnitTexCoords = TexCoords{Left: 0, Right: 1, Bottom: 0, Top: 1}

// Sprite is one rectangle of a sprite sheet.
type Sprite struct {
	Width, Height float32 // pixel size of the quad
	// Offsets point from the quad's center to the entity's pivot, in pixels.
	// The anchor is shifted by the negated offsets, so {0, 0} centers the
	// sprite on the entity.
	Offsets   [2]float32
	TexCoords TexCoords
}

// SpriteSheet groups sprites cut from a single texture.
type SpriteSheet struct {
	Texture Handle[Texture]
	Sprites []Sprite
}

// Sprite returns sprite i, or false when i is out of range.
func (s *SpriteSheet) Sprite(i int) (Sprite, bool) {
	if i < 0 || i >= len(s.Sprites) {
		return Sprite{}, false
	}
	return s.Sprites[i], true
}

// SpriteRender selects one sprite of a sheet.
type SpriteRender struct {
	Sheet Handle[SpriteSheet]
	Index int
}

// NewSpriteFromPixels builds a sprite from a pixel rectangle (origin top-left,
// y down) inside an imageW x imageH texture.
func NewSpriteFromPixels(imageW, imageH, x, y, w, h int, offsets [2]float32) Sprite {
	iw, ih := float32(imageW), float32(imageH)
	return Sprite{
		Width:   float32(w),
		Height:  float32(h),
		Offsets: offsets,
		TexCoords: TexCoords{
			Left:   float32(x) / iw,
			Right:  float32(x+w) / iw,
			Top:    1 - float32(y)/ih,
			Bottom: 1 - float32(y+h)/ih,
		},
	}
}

// --- YAML sheet definitions ---

type yamlSheet struct {
	TextureWidth  int          `yaml:"texture_width"`
	TextureHeight int          `yaml:"texture_height"`
	Grid          *yamlGrid    `yaml:"grid"`
	Sprites       []yamlSprite `yaml:"sprites"`
}

type yamlGrid struct {
	Columns    int `yaml:"columns"`
	Rows       int `yaml:"rows"`
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`
	Count      int `yaml:"count"` // 0 means columns*rows
}

type yamlSprite struct {
	X       int        `yaml:"x"`
	Y       int        `yaml:"y"`
	Width   int        `yaml:"width"`
	Height  int        `yaml:"height"`
	Offsets [2]float32 `yaml:"offsets"`
}

// LoadSpriteSheetYAML parses a sheet definition:
//
//	texture_width: 128
//	texture_height: 64
//	grid: {columns: 4, rows: 2, cell_width: 32, cell_height: 32}
//	sprites:
//	  - {x: 0, y: 0, width: 16, height: 16, offsets: [0, -8]}
//
// Grid cells come first (row-major), followed by the listed sprites.
func LoadSpriteSheetYAML(data []byte, tex Handle[Texture]) (*SpriteSheet, error) {
	var def yamlSheet
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("flat2d: failed to parse sprite sheet YAML: %w", err)
	}
	if def.TextureWidth <= 0 || def.TextureHeight <= 0 {
		return nil, fmt.Errorf("%w: texture size %dx%d", ErrInvalidSheet, def.TextureWidth, def.TextureHeight)
	}

	sheet := &SpriteSheet{Texture: tex}
	if g := def.Grid; g != nil {
		if g.Columns <= 0 || g.Rows <= 0 || g.CellWidth <= 0 || g.CellHeight <= 0 {
			return nil, fmt.Errorf("%w: grid %+v", ErrInvalidSheet, *g)
		}
		if g.Columns*g.CellWidth > def.TextureWidth || g.Rows*g.CellHeight > def.TextureHeight {
			return nil, fmt.Errorf("%w: grid exceeds texture bounds", ErrInvalidSheet)
		}
		count := g.Columns * g.Rows
		if g.Count > 0 && g.Count < count {
			count = g.Count
		}
		for i := 0; i < count; i++ {
			x := (i % g.Columns) * g.CellWidth
			y := (i / g.Columns) * g.CellHeight
			sheet.Sprites = append(sheet.Sprites,
				NewSpriteFromPixels(def.TextureWidth, def.TextureHeight, x, y, g.CellWidth, g.CellHeight, [2]float32{}))
		}
	}
	for i, s := range def.Sprites {
		if s.Width <= 0 || s.Height <= 0 || s.X < 0 || s.Y < 0 ||
			s.X+s.Width > def.TextureWidth || s.Y+s.Height > def.TextureHeight {
			return nil, fmt.Errorf("%w: sprite %d (%d,%d %dx%d) outside %dx%d texture",
				ErrInvalidSheet, i, s.X, s.Y, s.Width, s.Height, def.TextureWidth, def.TextureHeight)
		}
		sheet.Sprites = append(sheet.Sprites,
			NewSpriteFromPixels(def.TextureWidth, def.TextureHeight, s.X, s.Y, s.Width, s.Height, s.Offsets))
	}
	if len(sheet.Sprites) == 0 {
		return nil, fmt.Errorf("%w: no sprites defined", ErrInvalidSheet)
	}
	return sheet, nil
}

// --- TexturePacker JSON ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonPoint struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

type jsonFrame struct {
	Filename         string     `json:"filename"`
	Frame            jsonRect   `json:"frame"`
	Rotated          bool       `json:"rotated"`
	Trimmed          bool       `json:"trimmed"`
	SpriteSourceSize jsonRect   `json:"spriteSourceSize"`
	SourceSize       jsonSize   `json:"sourceSize"`
	Pivot            *jsonPoint `json:"pivot"`
}

// LoadTexturePackerSheet parses TexturePacker JSON (hash or array format) for
// a single imageW x imageH page. Sprites are ordered by frame name; names maps
// each frame name to its sprite index. Trim and pivot data are folded into
// the sprite offsets. Rotated frames cannot be expressed as a UV rectangle and
// are rejected.
func LoadTexturePackerSheet(data []byte, tex Handle[Texture], imageW, imageH int) (*SpriteSheet, map[string]int, error) {
	var probe struct {
		Frames json.RawMessage `json:"frames"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, nil, fmt.Errorf("flat2d: failed to parse atlas JSON: %w", err)
	}
	if probe.Frames == nil {
		return nil, nil, fmt.Errorf("flat2d: atlas JSON has no \"frames\" key")
	}
	if imageW <= 0 || imageH <= 0 {
		return nil, nil, fmt.Errorf("%w: texture size %dx%d", ErrInvalidSheet, imageW, imageH)
	}

	var frames []jsonFrame
	if trimmed := bytes.TrimSpace(probe.Frames); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(probe.Frames, &frames); err != nil {
			return nil, nil, fmt.Errorf("flat2d: failed to parse atlas frames array: %w", err)
		}
	} else {
		var hash map[string]jsonFrame
		if err := json.Unmarshal(probe.Frames, &hash); err != nil {
			return nil, nil, fmt.Errorf("flat2d: failed to parse atlas frames: %w", err)
		}
		for name, f := range hash {
			f.Filename = name
			frames = append(frames, f)
		}
	}
	sort.Slice(frames, func(i, j int) bool { return frames[i].Filename < frames[j].Filename })

	sheet := &SpriteSheet{Texture: tex, Sprites: make([]Sprite, 0, len(frames))}
	names := make(map[string]int, len(frames))
	for _, f := range frames {
		if f.Rotated {
			return nil, nil, fmt.Errorf("%w: frame %q is rotated", ErrInvalidSheet, f.Filename)
		}
		if _, dup := names[f.Filename]; dup {
			return nil, nil, fmt.Errorf("%w: duplicate frame %q", ErrInvalidSheet, f.Filename)
		}
		names[f.Filename] = len(sheet.Sprites)
		sheet.Sprites = append(sheet.Sprites, frameToSprite(f, imageW, imageH))
	}
	return sheet, names, nil
}

func frameToSprite(f jsonFrame, imageW, imageH int) Sprite {
	srcW, srcH := f.SourceSize.W, f.SourceSize.H
	if srcW == 0 || srcH == 0 {
		srcW, srcH = f.Frame.W, f.Frame.H
	}
	pivot := jsonPoint{0.5, 0.5}
	if f.Pivot != nil {
		pivot = *f.Pivot
	}
	// Center of the trimmed frame relative to the pivot, y flipped up.
	dx := float32(f.SpriteSourceSize.X) + float32(f.Frame.W)/2 - pivot.X*float32(srcW)
	dy := -(float32(f.SpriteSourceSize.Y) + float32(f.Frame.H)/2 - pivot.Y*float32(srcH))
	return NewSpriteFromPixels(imageW, imageH, f.Frame.X, f.Frame.Y, f.Frame.W, f.Frame.H, [2]float32{-dx, -dy})
}
