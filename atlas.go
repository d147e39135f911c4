package meadow

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// AtlasRegion describes a named sub-rectangle within an atlas page.
type AtlasRegion struct {
	Page int  // index into Atlas.Pages
	Rect Rect // sub-image rect within the page (may be smaller than Original if trimmed)

	Original Vec2 // untrimmed sprite size as authored
	Offset   Vec2 // trim offset from TexturePacker
	Rotated  bool // true if the region is stored 90 degrees clockwise in the page
}

// Atlas maps frame names to regions of one or more page textures.
// Pages holds texture paths, resolved through the texture cache at draw time
// like any other Sprite.
type Atlas struct {
	Pages   []string
	regions map[string]AtlasRegion
}

// Region returns the region stored under name.
func (a *Atlas) Region(name string) (AtlasRegion, bool) {
	r, ok := a.regions[name]
	return r, ok
}

// Sprite returns a Sprite drawing the named frame. If the name doesn't
// exist it logs a warning and returns a Sprite with no texture path, which
// the Renderer skips.
func (a *Atlas) Sprite(name string) Sprite {
	r, ok := a.regions[name]
	if !ok {
		logger.WithField("name", name).Warn("atlas region not found")
		return Sprite{}
	}
	if r.Page < 0 || r.Page >= len(a.Pages) {
		logger.WithFields(logrus.Fields{"name": name, "page": r.Page}).Warn("atlas page not found")
		return Sprite{}
	}
	if r.Rotated {
		logger.WithField("name", name).Debug("atlas region is rotated; drawing as stored")
	}
	return NewSpriteRegion(a.Pages[r.Page], r.Rect)
}

// Names returns the frame names in sorted order.
func (a *Atlas) Names() []string {
	names := make([]string, 0, len(a.regions))
	for name := range a.regions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of regions.
func (a *Atlas) Len() int { return len(a.regions) }

// LoadAtlas parses TexturePacker JSON data. Supports both the hash format
// (single "frames" object) and the array format ("textures" array with
// per-page frame lists).
//
// pages gives the texture path of each page. If pages is nil the image
// names recorded in the JSON are used instead.
func LoadAtlas(jsonData []byte, pages []string) (*Atlas, error) {
	// Probe top-level keys to detect format.
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
		Meta     struct {
			Image string `json:"image"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("meadow: failed to parse atlas JSON: %w", err)
	}

	atlas := &Atlas{
		Pages:   pages,
		regions: make(map[string]AtlasRegion),
	}

	var images []string
	switch {
	case probe.Textures != nil:
		var err error
		if images, err = parseArrayFormat(probe.Textures, atlas); err != nil {
			return nil, err
		}
	case probe.Frames != nil:
		if err := parseHashFrames(probe.Frames, 0, atlas); err != nil {
			return nil, err
		}
		images = []string{probe.Meta.Image}
	default:
		return nil, fmt.Errorf("meadow: atlas JSON has neither \"frames\" nor \"textures\" key")
	}

	if atlas.Pages == nil {
		atlas.Pages = images
	}
	logger.WithFields(logrus.Fields{"regions": len(atlas.regions), "pages": len(atlas.Pages)}).Debug("atlas loaded")
	return atlas, nil
}

// --- JSON structure types ---

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

type jsonFrame struct {
	Frame            jsonRect `json:"frame"`
	Rotated          bool     `json:"rotated"`
	Trimmed          bool     `json:"trimmed"`
	SpriteSourceSize jsonRect `json:"spriteSourceSize"`
	SourceSize       jsonSize `json:"sourceSize"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

// parseHashFrames parses the hash format: {"name": {frame...}, ...}
func parseHashFrames(raw json.RawMessage, page int, atlas *Atlas) error {
	var frames map[string]jsonFrame
	if err := json.Unmarshal(raw, &frames); err != nil {
		return fmt.Errorf("meadow: failed to parse atlas frames: %w", err)
	}
	for name, f := range frames {
		atlas.regions[name] = frameToRegion(f, page)
	}
	return nil
}

// parseArrayFormat parses the array format: [{"image":"...", "frames":{...}}, ...]
// and returns the page image names.
func parseArrayFormat(raw json.RawMessage, atlas *Atlas) ([]string, error) {
	var textures []jsonTexturePage
	if err := json.Unmarshal(raw, &textures); err != nil {
		return nil, fmt.Errorf("meadow: failed to parse atlas textures array: %w", err)
	}
	images := make([]string, len(textures))
	for i, tex := range textures {
		images[i] = tex.Image
		for name, f := range tex.Frames {
			atlas.regions[name] = frameToRegion(f, i)
		}
	}
	return images, nil
}

func frameToRegion(f jsonFrame, page int) AtlasRegion {
	return AtlasRegion{
		Page:     page,
		Rect:     Rect{X: float64(f.Frame.X), Y: float64(f.Frame.Y), Width: float64(f.Frame.W), Height: float64(f.Frame.H)},
		Original: Vec2{float64(f.SourceSize.W), float64(f.SourceSize.H)},
		Offset:   Vec2{float64(f.SpriteSourceSize.X), float64(f.SpriteSourceSize.Y)},
		Rotated:  f.Rotated,
	}
}
