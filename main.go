package main

import (
	"flag"
	"gl-quads/libgl"
	"gl-quads/libscn"
	"log"
	"path"
	"runtime"
	"time"
	"unsafe"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/exp/rand"
)

var Arguments = struct {
	Assets                     string
	Scene                      string
	Seed                       uint64
	Gui                        bool
	EnableCompatibilityProfile bool
	Width                      int
	Height                     int
}{
	Assets: "assets",
	Scene:  "cube",
	Gui:    true,
	Width:  1280,
	Height: 720,
}

func main() {
	flag.StringVar(&Arguments.Assets, "assets", Arguments.Assets, "directory containing index.json")
	flag.StringVar(&Arguments.Scene, "scene", Arguments.Scene, "name of the scene to show")
	flag.Uint64Var(&Arguments.Seed, "seed", Arguments.Seed, "seed of the random colors, 0 picks one from the clock")
	flag.BoolVar(&Arguments.Gui, "gui", Arguments.Gui, "show the overlay")
	flag.BoolVar(&Arguments.EnableCompatibilityProfile, "enable-compatibility-profile", Arguments.EnableCompatibilityProfile, "")
	flag.IntVar(&Arguments.Width, "width", Arguments.Width, "window width")
	flag.IntVar(&Arguments.Height, "height", Arguments.Height, "window height")
	flag.Parse()

	pack := &libscn.DirPack{}
	err := pack.AddIndexFile(path.Join(Arguments.Assets, "index.json"))
	check(err)
	scene, err := pack.LoadScene(Arguments.Scene)
	if err != nil {
		log.Printf("available scenes: %v\n", pack.SceneNames())
	}
	check(err)

	runtime.LockOSThread()
	err = glfw.Init()
	check(err)
	defer glfw.Terminate()

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 5)
	glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	if Arguments.EnableCompatibilityProfile {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCompatProfile)
	} else {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	}
	ctx, err := glfw.CreateWindow(Arguments.Width, Arguments.Height, scene.Name, nil, nil)
	check(err)
	ctx.MakeContextCurrent()
	glfw.SwapInterval(1)

	err = gl.InitWithProcAddrFunc(func(name string) unsafe.Pointer {
		addr := glfw.GetProcAddress(name)
		if addr == nil {
			return unsafe.Pointer(uintptr(0xffff_ffff_ffff_ffff))
		}
		return addr
	})
	check(err)
	libgl.EnableDebugOutput(false)
	libgl.State = libgl.NewStateManager()

	fbWidth, fbHeight := ctx.GetFramebufferSize()
	host := libgl.NewHost(fbWidth, fbHeight)
	defer host.Release()
	ctx.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		host.Resize(width, height)
	})

	seed := Arguments.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Printf("Using color seed %d\n", seed)
	driver := libscn.NewDriver(host, rand.New(rand.NewSource(seed)))
	err = driver.Load(scene, pack)
	check(err)
	defer driver.Release()

	var overlay *Overlay
	if Arguments.Gui {
		src, err := pack.LoadProgramSource("imgui")
		check(err)
		overlay, err = NewOverlay(ctx, src)
		check(err)
		defer overlay.Delete()
	}

	Input = NewInputManager(ctx, glfw.KeyEscape, glfw.KeySpace, glfw.KeyC, glfw.KeyTab)

	for !ctx.ShouldClose() {
		glfw.PollEvents()
		Input.Update(ctx)

		if Input.IsKeyTap(glfw.KeyEscape) {
			ctx.SetShouldClose(true)
		}
		if Input.IsKeyTap(glfw.KeySpace) {
			driver.SetPaused(!driver.Paused())
		}
		if Input.IsKeyTap(glfw.KeyC) {
			if err := driver.RegenerateColors(); err != nil {
				log.Printf("Could not regenerate colors: %v\n", err)
			}
		}
		if overlay != nil && Input.IsKeyTap(glfw.KeyTab) {
			overlay.Visible = !overlay.Visible
		}

		delta := Input.TimeDelta()
		if overlay != nil {
			if err := overlay.Build(driver, delta); err != nil {
				log.Printf("Overlay action failed: %v\n", err)
			}
		}

		width, height := ctx.GetFramebufferSize()
		if width > 0 && height > 0 {
			driver.Frame(delta, float32(width)/float32(height))
		}

		if overlay != nil {
			overlay.Draw()
		}

		ctx.SwapBuffers()
	}
}

func check(err error) {
	if err != nil {
		log.Panic(err)
	}
}
