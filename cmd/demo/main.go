package main

import (
	"fmt"
	stdmath "math"
	"os"
	"path/filepath"
	"time"

	"brush-engine/config"
	"brush-engine/core"
	"brush-engine/internal/opengl"
	eio "brush-engine/io"
	"brush-engine/math"
	"brush-engine/scene"
	"brush-engine/ui"
)

// collBox is an axis-aligned rectangle in XZ used for player collision.
// Every solid brush contributes one.
type collBox struct {
	minX, maxX, minZ, maxZ float32
}

const playerRadius = float32(0.35) // player XZ footprint radius

// resolvePlayerCollision pushes pos outside every overlapping collBox.
func resolvePlayerCollision(pos math.Vec3, boxes []collBox) math.Vec3 {
	for _, b := range boxes {
		eMinX := b.minX - playerRadius
		eMaxX := b.maxX + playerRadius
		eMinZ := b.minZ - playerRadius
		eMaxZ := b.maxZ + playerRadius

		if pos.X <= eMinX || pos.X >= eMaxX || pos.Z <= eMinZ || pos.Z >= eMaxZ {
			continue // no overlap
		}

		// Depth of penetration on each face of the expanded box
		dLeft := pos.X - eMinX
		dRight := eMaxX - pos.X
		dFront := pos.Z - eMinZ
		dBack := eMaxZ - pos.Z

		// Push along the axis of minimum penetration
		switch {
		case dLeft <= dRight && dLeft <= dFront && dLeft <= dBack:
			pos.X = eMinX
		case dRight <= dLeft && dRight <= dFront && dRight <= dBack:
			pos.X = eMaxX
		case dFront <= dLeft && dFront <= dRight && dFront <= dBack:
			pos.Z = eMinZ
		default:
			pos.Z = eMaxZ
		}
	}
	return pos
}

// playerController handles mouse look and WASD walking with gravity and
// brush collision. The cursor stays captured while the window has focus.
type playerController struct {
	moveSpeed float32
	lookSpeed float32

	lastMouseX float64
	lastMouseY float64
	firstMouse bool

	velocityY      float32
	onGround       bool
	eyeHeight      float32
	jumpKeyWasDown bool

	boxes []collBox
}

const (
	gravity   = -18.0 // m/s^2
	jumpSpeed = 7.0   // initial upward velocity on jump
)

func newPlayerController(boxes []collBox) *playerController {
	return &playerController{
		moveSpeed:  6.0,
		lookSpeed:  0.003,
		firstMouse: true,
		eyeHeight:  1.7,
		onGround:   true,
		boxes:      boxes,
	}
}

func (pc *playerController) Update(window *core.Window, camera *scene.Camera, deltaTime float32) {
	// Cap deltaTime to avoid huge physics steps on first frames or hitches
	if deltaTime > 0.05 {
		deltaTime = 0.05
	}

	// Mouse look
	mouseX, mouseY := window.GetCursorPos()
	if pc.firstMouse {
		pc.lastMouseX = mouseX
		pc.lastMouseY = mouseY
		pc.firstMouse = false
	}
	camera.Rotate(
		float32(mouseX-pc.lastMouseX)*pc.lookSpeed,
		float32(pc.lastMouseY-mouseY)*pc.lookSpeed,
	)
	pc.lastMouseX = mouseX
	pc.lastMouseY = mouseY

	// Horizontal move direction from yaw only, so strafing stays level
	moveForward := math.Vec3{
		X: float32(stdmath.Cos(float64(camera.Yaw))),
		Y: 0,
		Z: float32(stdmath.Sin(float64(camera.Yaw))),
	}
	right := math.Vec3{
		X: float32(stdmath.Cos(float64(camera.Yaw - stdmath.Pi/2))),
		Y: 0,
		Z: float32(stdmath.Sin(float64(camera.Yaw - stdmath.Pi/2))),
	}

	hMove := math.Vec3{}
	if window.IsKeyPressed(core.KeyW) {
		hMove = hMove.Add(moveForward.Mul(pc.moveSpeed * deltaTime))
	}
	if window.IsKeyPressed(core.KeyS) {
		hMove = hMove.Add(moveForward.Mul(-pc.moveSpeed * deltaTime))
	}
	if window.IsKeyPressed(core.KeyD) {
		hMove = hMove.Add(right.Mul(-pc.moveSpeed * deltaTime))
	}
	if window.IsKeyPressed(core.KeyA) {
		hMove = hMove.Add(right.Mul(pc.moveSpeed * deltaTime))
	}

	// Jump, debounced so it fires once per press
	spaceDown := window.IsKeyPressed(core.KeySpace)
	if spaceDown && !pc.jumpKeyWasDown && pc.onGround {
		pc.velocityY = jumpSpeed
		pc.onGround = false
	}
	pc.jumpKeyWasDown = spaceDown

	if !pc.onGround {
		pc.velocityY += gravity * deltaTime
	}

	newPos := camera.Position.Add(hMove)
	newPos.Y += pc.velocityY * deltaTime
	if newPos.Y <= pc.eyeHeight {
		newPos.Y = pc.eyeHeight
		pc.velocityY = 0
		pc.onGround = true
	}

	camera.Position = resolvePlayerCollision(newPos, pc.boxes)
}

// registerBrushMesh creates and registers the shared brush cube for one
// texture, so every brush with that texture batches into one draw.
func registerBrushMesh(sc *scene.Scene, textures *scene.TextureBank, texture string) {
	name := scene.BrushMeshName(texture)
	if _, ok := sc.Meshes[name]; ok {
		return
	}
	mesh := scene.CreateBrushCube(name)
	mesh.Material = scene.NewMaterial(texture, textures.Load(texture))
	sc.RegisterMesh(mesh)
}

// addModel bakes a prefab model into the scene at the given position and
// returns the collision boxes of its solid brushes.
func addModel(sc *scene.Scene, textures *scene.TextureBank, model *scene.Model, at math.Vec3) []collBox {
	var boxes []collBox
	for _, r := range model.Renderables {
		if br, ok := r.(scene.BrushRenderable); ok {
			registerBrushMesh(sc, textures, br.Texture)
			boxes = append(boxes, collBox{
				minX: at.X + br.Position.X,
				maxX: at.X + br.Position.X + br.Size.X,
				minZ: at.Z + br.Position.Z,
				maxZ: at.Z + br.Position.Z + br.Size.Z,
			})
		}
	}
	model.Transform = math.Mat4Translation(at)
	model.AddToScene(sc)
	return boxes
}

// roomPrefab is the demo arena: a tiled floor, four walls and a glowing
// lamp block. World-space tiling keeps the texture density uniform no
// matter how the brushes are sized.
func roomPrefab() *eio.PrefabFile {
	return &eio.PrefabFile{
		Name: "room",
		Brushes: []eio.BrushData{
			{Texture: "stone", Position: [3]float32{-12, -0.5, -12}, Size: [3]float32{24, 0.5, 24}, Flags: []string{"extend_texture"}},
			{Texture: "brick", Position: [3]float32{-12, 0, -12}, Size: [3]float32{24, 3, 0.5}, Flags: []string{"extend_texture"}},
			{Texture: "brick", Position: [3]float32{-12, 0, 11.5}, Size: [3]float32{24, 3, 0.5}, Flags: []string{"extend_texture"}},
			{Texture: "brick", Position: [3]float32{-12, 0, -11.5}, Size: [3]float32{0.5, 3, 23}, Flags: []string{"extend_texture"}},
			{Texture: "brick", Position: [3]float32{11.5, 0, -11.5}, Size: [3]float32{0.5, 3, 23}, Flags: []string{"extend_texture"}},
			{Texture: "lamp", Position: [3]float32{-0.5, 2.5, -0.5}, Size: [3]float32{1, 0.3, 1}, Flags: []string{"fullbright"}},
		},
	}
}

func cratePrefab() *eio.PrefabFile {
	return &eio.PrefabFile{
		Name: "crate",
		Brushes: []eio.BrushData{
			{Texture: "crate", Position: [3]float32{0, 0, 0}, Size: [3]float32{1, 1, 1}},
		},
	}
}

func main() {
	cfg, err := config.Load("brush-engine.yaml")
	if err != nil {
		fmt.Printf("config: %v\n", err)
		os.Exit(1)
	}
	kernel, err := cfg.KernelParams()
	if err != nil {
		fmt.Printf("config: %v\n", err)
		os.Exit(1)
	}

	window, err := core.NewWindow(cfg.WindowConfig())
	if err != nil {
		fmt.Printf("window: %v\n", err)
		os.Exit(1)
	}
	defer window.Destroy()

	fbW, fbH := window.GetFramebufferSize()
	renderer, err := opengl.NewRenderer(fbW, fbH)
	if err != nil {
		fmt.Printf("renderer: %v\n", err)
		os.Exit(1)
	}
	defer renderer.Destroy()

	screen, err := opengl.NewScreenFBO(fbW, fbH)
	if err != nil {
		fmt.Printf("screen pass: %v\n", err)
		os.Exit(1)
	}
	defer screen.Destroy()

	uiRenderer, err := opengl.NewUIRenderer()
	if err != nil {
		fmt.Printf("ui pass: %v\n", err)
		os.Exit(1)
	}
	defer uiRenderer.Destroy()

	spriteRenderer, err := opengl.NewSpriteRenderer()
	if err != nil {
		fmt.Printf("sprite pass: %v\n", err)
		os.Exit(1)
	}
	defer spriteRenderer.Destroy()

	textures := scene.NewTextureBank(cfg.TextureRoot)
	sc := scene.NewScene()
	sc.Fog = cfg.FogParams()
	sc.Kernel = kernel
	sc.Skybox = cfg.Skybox

	// ── World ─────────────────────────────────────────────────────────────

	var boxes []collBox

	room, err := eio.BuildModel(roomPrefab())
	if err != nil {
		fmt.Printf("room prefab: %v\n", err)
		os.Exit(1)
	}
	boxes = append(boxes, addModel(sc, textures, room, math.Vec3Zero)...)

	crateSpots := []math.Vec3{
		{X: 3, Y: 0, Z: -2}, {X: 4.2, Y: 0, Z: -2.3}, {X: 3.6, Y: 1, Z: -2.1},
		{X: -5, Y: 0, Z: 4},
	}
	for _, at := range crateSpots {
		crate, err := eio.BuildModel(cratePrefab())
		if err != nil {
			fmt.Printf("crate prefab: %v\n", err)
			os.Exit(1)
		}
		boxes = append(boxes, addModel(sc, textures, crate, at)...)
	}

	// Extra prefabs dropped next to the binary load without a rebuild.
	if entries, err := os.ReadDir("res/prefabs"); err == nil {
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
				continue
			}
			model, meshes, err := eio.LoadPrefab(filepath.Join("res/prefabs", e.Name()))
			if err != nil {
				fmt.Printf("prefab %s: %v\n", e.Name(), err)
				continue
			}
			for _, m := range meshes {
				sc.RegisterMesh(m)
			}
			boxes = append(boxes, addModel(sc, textures, model, math.Vec3Zero)...)
		}
	}

	// Foliage: crossed cutout quads, drawn through the single-mesh path so
	// the alpha test applies.
	foliage := scene.CreateQuad()
	foliage.Name = "foliage"
	foliage.Material = scene.NewMaterial("foliage", textures.Load("foliage"))
	sc.RegisterMesh(foliage)

	bush := scene.NewModel()
	bush.Mobile = true
	for _, angle := range []float32{0, stdmath.Pi / 2} {
		bush.Renderables = append(bush.Renderables, scene.MeshRenderable{
			MeshName:  "foliage",
			Transform: math.Mat4RotationY(angle).Mul(math.Mat4Translation(math.Vec3{X: -3, Y: 0.5, Z: -4})),
			Flags:     scene.InstanceFlags(scene.FlagCutout),
		})
	}

	// Orbiting marker sphere, re-queued with a fresh transform every frame.
	marker := scene.CreateSphere(0.3, 24, 16)
	marker.Name = "marker"
	marker.Material = scene.NewMaterial("marker", textures.Load("lamp"))
	sc.RegisterMesh(marker)

	orb := scene.NewModel()
	orb.Mobile = true
	orb.Renderables = append(orb.Renderables, scene.MeshRenderable{
		MeshName:  "marker",
		Transform: math.Mat4Identity(),
		Flags:     scene.InstanceFlags(scene.FlagFullbright),
	})

	// ── Lights ────────────────────────────────────────────────────────────

	if err := sc.Lights.AddPoint(scene.PointLight{
		Position:  math.Vec3{X: 0, Y: 2.4, Z: 0},
		Ambient:   core.Color{R: 0.05, G: 0.05, B: 0.04, A: 1},
		Diffuse:   core.Color{R: 0.9, G: 0.85, B: 0.7, A: 1},
		Specular:  core.Color{R: 1, G: 1, B: 0.9, A: 1},
		Constant:  1.0,
		Linear:    0.09,
		Quadratic: 0.032,
	}); err != nil {
		fmt.Printf("lights: %v\n", err)
	}
	orbLight := scene.NewPointLight(math.Vec3{}, core.Color{R: 0.3, G: 0.5, B: 1, A: 1})
	if err := sc.Lights.AddPoint(orbLight); err != nil {
		fmt.Printf("lights: %v\n", err)
	}
	orbLightIdx := sc.Lights.Count() - 1

	// ── Skybox ────────────────────────────────────────────────────────────

	var skybox *opengl.Skybox
	if sc.Skybox != "" {
		cm, err := scene.LoadCubemap(cfg.TextureRoot, sc.Skybox)
		if err != nil {
			fmt.Printf("skybox: %v\n", err)
		} else if skybox, err = opengl.NewSkybox(cm); err != nil {
			fmt.Printf("skybox: %v\n", err)
		}
	}

	// ── HUD ───────────────────────────────────────────────────────────────

	atlas := textures.Load("ui_atlas")
	hud := ui.NewBuilder(float32(fbW), float32(fbH))

	// ── Main loop ─────────────────────────────────────────────────────────

	camera := scene.NewCamera(float32(fbW) / float32(fbH))
	camera.Position = math.Vec3{X: 0, Y: 1.7, Z: 6}
	player := newPlayerController(boxes)
	window.CaptureCursor()

	lastTime := time.Now()
	fpsTime := lastTime
	frames := 0
	fps := 0

	for !window.ShouldClose() {
		window.PollEvents()
		if window.IsKeyPressed(core.KeyEscape) {
			break
		}

		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		frames++
		if now.Sub(fpsTime) >= time.Second {
			fps = frames
			frames = 0
			fpsTime = now
		}

		// Track framebuffer size for resizes
		if w, h := window.GetFramebufferSize(); w != fbW || h != fbH {
			fbW, fbH = w, h
			renderer.Resize(fbW, fbH)
			screen.Resize(fbW, fbH)
			camera.UpdateAspectRatio(float32(fbW), float32(fbH))
		}

		player.Update(window, camera, dt)

		// Kernel hotkeys and fog toggle
		switch {
		case window.IsKeyPressed(core.Key1):
			sc.Kernel = scene.IdentityKernel()
		case window.IsKeyPressed(core.Key2):
			sc.Kernel, _ = scene.KernelPreset("sharpen")
		case window.IsKeyPressed(core.Key3):
			sc.Kernel, _ = scene.KernelPreset("blur")
		case window.IsKeyPressed(core.Key4):
			sc.Kernel, _ = scene.KernelPreset("edge")
		}
		if window.IsKeyPressed(core.KeyF) {
			sc.Fog.Enabled = true
		}
		if window.IsKeyPressed(core.KeyR) {
			sc.Fog.Enabled = false
		}

		// Orbit the marker and its light around the lamp
		angle := float32(now.UnixMilli()%10000) / 10000 * 2 * stdmath.Pi
		orbPos := math.Vec3{
			X: 2.5 * float32(stdmath.Cos(float64(angle))),
			Y: 1.8,
			Z: 2.5 * float32(stdmath.Sin(float64(angle))),
		}
		orb.Transform = math.Mat4Translation(orbPos)
		orbLight.Position = orbPos
		sc.Lights.Points()[orbLightIdx] = orbLight

		sc.ClearMobile()
		bush.QueueMobile(sc)
		orb.QueueMobile(sc)

		// World pass into the off-screen target
		screen.Begin()
		renderer.BeginFrame(camera, sc.Lights)
		renderer.DrawStatic(sc)
		renderer.DrawMobile(sc)
		if skybox != nil {
			skybox.Draw(camera.ViewMatrix(), camera.ProjectionMatrix())
		}
		screen.End()

		// Screen pass: kernel, then fog
		screen.Blit(sc.Kernel, sc.Fog)

		// HUD on top
		hud.Reset(float32(fbW), float32(fbH))
		hud.NineCell(
			core.Rect{X: 6, Y: 6, Width: 150, Height: 40},
			core.Rect{X: 60, Y: float32(atlas.Height) - 104, Width: 24, Height: 24},
			8,
		)
		hud.Text(16, 16, fmt.Sprintf("FPS %d", fps), 2, float32(atlas.Height))
		uiRenderer.Draw(hud.Batch(), atlas, float32(fbW), float32(fbH))

		crosshair := []ui.Sprite{{
			Screen:  core.Rect{X: float32(fbW)/2 - 8, Y: float32(fbH)/2 - 8, Width: 16, Height: 16},
			Atlas:   core.Rect{X: 84, Y: float32(atlas.Height) - 96, Width: 16, Height: 16},
			Depth:   0.1,
			Texture: atlas,
		}}
		spriteRenderer.Draw(crosshair, float32(fbW), float32(fbH))

		window.SwapBuffers()
	}
}
