package ui

import (
	"sort"

	"brush-engine/core"
	"brush-engine/scene"
)

// Sprite is one screen-space quad drawn by the per-sprite pass: a pixel
// rect on screen (top-left origin, flipped in the shader), a pixel rect
// into its texture, and an explicit depth written to the clip-space Z so
// sprites order against each other without relying on draw order.
type Sprite struct {
	Screen  core.Rect
	Atlas   core.Rect
	Depth   float32 // 0 = nearest, 1 = farthest
	Texture *scene.Texture
}

// SortSprites orders sprites back to front so alpha blending composites
// correctly. The sort is stable: sprites at equal depth keep their
// submission order.
func SortSprites(sprites []Sprite) {
	sort.SliceStable(sprites, func(i, j int) bool {
		return sprites[i].Depth > sprites[j].Depth
	})
}
