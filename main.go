package main

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nscene/assets"
	"github.com/bloeys/nscene/camera"
	"github.com/bloeys/nscene/config"
	"github.com/bloeys/nscene/engine"
	"github.com/bloeys/nscene/input"
	"github.com/bloeys/nscene/logging"
	"github.com/bloeys/nscene/materials"
	"github.com/bloeys/nscene/meshes"
	"github.com/bloeys/nscene/renderer/rend3dgl"
	"github.com/bloeys/nscene/scene"
	"github.com/bloeys/nscene/textures"
	"github.com/bloeys/nscene/timing"
	"github.com/chewxy/math32"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	PROFILE_CPU = false
	PROFILE_MEM = false

	MAX_PITCH_RAD = 1.5
)

type Game struct {
	Cfg config.Config

	WinWidth  int32
	WinHeight int32
	Win       *engine.Window

	Rend     *rend3dgl.Rend3DGL
	Meshes   meshes.Library
	Mat      *materials.Material
	Pipeline *scene.Pipeline
	Scene    *scene.Description
	Watcher  *scene.Watcher

	Cam   camera.Camera
	Yaw   float32
	Pitch float32
}

func main() {

	cfgPath := config.DefaultPath
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to load config. Err:", err)
	}

	err = engine.Init()
	if err != nil {
		logging.ErrLog.Fatalln("Failed to init engine. Err:", err)
	}

	dpiScaling := getDpiScaling(cfg.Window.Width, cfg.Window.Height)
	winWidth := int32(float32(cfg.Window.Width) * dpiScaling)
	winHeight := int32(float32(cfg.Window.Height) * dpiScaling)

	window, err := engine.CreateOpenGLWindowCentered(cfg.Window.Title, winWidth, winHeight, engine.WindowFlags_RESIZABLE|engine.WindowFlags_ALLOW_HIGHDPI)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create window. Err: ", err)
	}

	engine.SetMSAA(cfg.IsMSAA())
	engine.SetVSync(cfg.IsVSync())

	game := &Game{
		Cfg:       cfg,
		Win:       window,
		WinWidth:  winWidth,
		WinHeight: winHeight,
	}
	window.EventCallbacks = append(window.EventCallbacks, game.handleWindowEvents)

	if PROFILE_CPU {

		pf, err := os.Create("cpu.pprof")
		if err == nil {
			defer pf.Close()
			pprof.StartCPUProfile(pf)
		} else {
			logging.ErrLog.Printf("Creating cpu.pprof file failed. CPU profiling will not run. Err=%v\n", err)
		}
	}

	engine.Run(game, window)

	if PROFILE_CPU {
		pprof.StopCPUProfile()
	}

	if PROFILE_MEM {

		heapProfile, err := os.Create("heap.pprof")
		if err == nil {

			err = pprof.WriteHeapProfile(heapProfile)
			if err != nil {
				logging.ErrLog.Printf("Writing heap profile to heap.pprof failed. Err=%v\n", err)
			}

			heapProfile.Close()

		} else {
			logging.ErrLog.Printf("Creating heap.pprof file failed. Err=%v\n", err)
		}
	}
}

func (g *Game) handleWindowEvents(e sdl.Event) {

	switch e := e.(type) {
	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED && e.Data2 > 0 {

			g.WinWidth = e.Data1
			g.WinHeight = e.Data2

			g.Cam.AspectRatio = float32(g.WinWidth) / float32(g.WinHeight)
			g.Cam.Update()
		}
	}
}

func getDpiScaling(unscaledWindowWidth, unscaledWindowHeight int32) float32 {

	// The no-scaling DPI on different platforms (e.g. when scale=100% on windows)
	var defaultDpi float32 = 96
	if runtime.GOOS == "darwin" {
		defaultDpi = 72
	}

	_, dpiHorizontal, _, err := sdl.GetDisplayDPI(0)
	if err != nil {
		dpiHorizontal = defaultDpi
		logging.WarnLog.Printf("Failed to get DPI with error '%s'. Using default DPI of '%f'\n", err.Error(), defaultDpi)
	}

	dpiScaling := dpiHorizontal / defaultDpi
	logging.InfoLog.Printf(
		"DPI scaling=%f. Scaled window size (width, height)=(%d, %d)\n",
		dpiScaling,
		int32(float32(unscaledWindowWidth)*dpiScaling), int32(float32(unscaledWindowHeight)*dpiScaling),
	)

	return dpiScaling
}

func (g *Game) Init() {

	var err error

	g.Mat, err = materials.NewMaterial("scene", g.Cfg.Scene.ShaderPath)
	if err != nil {
		logging.ErrLog.Fatalf("Failed to create scene material. Err: %v\n", err)
	}
	g.Mat.Use()

	err = g.Meshes.LoadAll(g.Cfg.Scene.PrimitivesDir)
	if err != nil {
		logging.ErrLog.Fatalf("Failed to load primitives. Err: %v\n", err)
	}

	g.Rend = rend3dgl.NewRend3DGL(&g.Meshes)
	texCache := textures.NewCache(g.Rend, &assets.FileDecoder{FlipVertically: g.Cfg.IsFlipTextures()})
	g.Pipeline = scene.NewPipeline(g.Mat, texCache, g.Rend)

	g.Scene, err = scene.LoadDescription(g.Cfg.Scene.Path)
	if err != nil {
		logging.ErrLog.Fatalf("Failed to load scene. Err: %v\n", err)
	}

	loaded := g.Pipeline.Prepare(g.Scene)
	logging.InfoLog.Printf("Scene '%s' ready with %d objects and %d textures\n", g.Cfg.Scene.Path, len(g.Scene.Objects), loaded)

	if g.Cfg.Scene.Watch {
		g.Watcher, err = scene.NewWatcher(g.Cfg.Scene.Path)
		if err != nil {
			logging.WarnLog.Printf("Scene hot reload disabled. Err: %v\n", err)
		}
	}

	g.initCamera()
}

func (g *Game) initCamera() {

	camCfg := &g.Cfg.Camera
	pos := gglm.NewVec3(camCfg.Position[0], camCfg.Position[1], camCfg.Position[2])
	forward := gglm.NewVec3(0, 0, -1)
	worldUp := gglm.NewVec3(0, 1, 0)

	g.Cam = camera.NewPerspective(
		&pos,
		&forward,
		&worldUp,
		camCfg.Near,
		camCfg.Far,
		camCfg.FovDeg*gglm.Deg2Rad,
		float32(g.WinWidth)/float32(g.WinHeight),
	)

	g.Yaw = -math32.Pi / 2
	g.Pitch = -0.2
	g.Cam.UpdateRotation(g.Pitch, g.Yaw)
}

func (g *Game) Update() {

	if input.IsQuitClicked() || input.KeyClicked(sdl.K_ESCAPE) {
		engine.Quit()
	}

	g.updateCameraLookAround()
	g.updateCameraPos()

	if g.Watcher != nil && g.Watcher.Changed() {
		g.reloadScene()
	}
}

// reloadScene swaps in the scene file from disk. A broken file keeps the current scene.
func (g *Game) reloadScene() {

	desc, err := scene.LoadDescription(g.Cfg.Scene.Path)
	if err != nil {
		logging.ErrLog.Printf("Scene reload failed, keeping the current scene. Err: %v\n", err)
		return
	}

	g.Scene = desc
	loaded := g.Pipeline.Reload(desc)
	logging.InfoLog.Printf("Reloaded scene with %d objects and %d textures\n", len(desc.Objects), loaded)
}

func (g *Game) updateCameraLookAround() {

	mouseX, mouseY := input.GetMouseMotion()
	if (mouseX == 0 && mouseY == 0) || !input.MouseDown(sdl.BUTTON_RIGHT) {
		return
	}

	const MAX_MOUSE_MOVE = 300
	mouseX = gglm.Clamp(mouseX, -MAX_MOUSE_MOVE, MAX_MOUSE_MOVE)
	mouseY = gglm.Clamp(mouseY, -MAX_MOUSE_MOVE, MAX_MOUSE_MOVE)

	rotSpeed := g.Cfg.Camera.RotSpeed

	g.Yaw += float32(mouseX) * rotSpeed * timing.DT()
	g.Pitch += float32(-mouseY) * rotSpeed * timing.DT()
	g.Pitch = gglm.Clamp(g.Pitch, -MAX_PITCH_RAD, MAX_PITCH_RAD)

	g.Cam.UpdateRotation(g.Pitch, g.Yaw)
}

func (g *Game) updateCameraPos() {

	update := false

	speed := g.Cfg.Camera.MoveSpeed * timing.DT()
	if input.KeyDown(sdl.K_LSHIFT) {
		speed *= 2
	}

	// Forward and backward
	if input.KeyDown(sdl.K_w) {
		g.Cam.Pos.Add(g.Cam.Forward.Clone().Scale(speed))
		update = true
	} else if input.KeyDown(sdl.K_s) {
		g.Cam.Pos.Add(g.Cam.Forward.Clone().Scale(-speed))
		update = true
	}

	// Left and right
	if input.KeyDown(sdl.K_d) {
		right := g.Cam.Right()
		g.Cam.Pos.Add(right.Scale(speed))
		update = true
	} else if input.KeyDown(sdl.K_a) {
		right := g.Cam.Right()
		g.Cam.Pos.Add(right.Scale(-speed))
		update = true
	}

	// Up and down
	if input.KeyDown(sdl.K_e) {
		up := g.Cam.WorldUp
		g.Cam.Pos.Add(up.Scale(speed))
		update = true
	} else if input.KeyDown(sdl.K_q) {
		up := g.Cam.WorldUp
		g.Cam.Pos.Add(up.Scale(-speed))
		update = true
	}

	if update {
		g.Cam.Update()
	}
}

func (g *Game) Render() {

	g.Mat.SetUnifMat4("view", &g.Cam.ViewMat)
	g.Mat.SetUnifMat4("projection", &g.Cam.ProjMat)
	g.Mat.SetUnifVec3("viewPosition", &g.Cam.Pos)

	g.Pipeline.Render(g.Scene.Objects)
}

func (g *Game) FrameEnd() {
	g.Rend.FrameEnd()
}

func (g *Game) DeInit() {

	if g.Watcher != nil {
		g.Watcher.Close()
	}

	g.Pipeline.Close()
	g.Meshes.DeleteAll()
	g.Mat.Delete()

	if err := g.Win.Destroy(); err != nil {
		logging.ErrLog.Printf("Failed to destroy window. Err: %v\n", err)
	}
}
