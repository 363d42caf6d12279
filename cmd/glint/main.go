package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/loov/hrtime"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core/v3"
	"github.com/vkngwrapper/core/v3/core1_0"
	"golang.org/x/sync/errgroup"

	"github.com/glintgfx/glint/render"
)

func main() {
	runtime.LockOSThread()

	var (
		width      = flag.Int("width", 1024, "window width in pixels")
		height     = flag.Int("height", 768, "window height in pixels")
		validation = flag.Bool("validation", true, "enable the Khronos validation layer")
		vertPath   = flag.String("vert", "shaders/vert.spv", "path to the vertex shader bytecode")
		fragPath   = flag.String("frag", "shaders/frag.spv", "path to the fragment shader bytecode")
	)
	flag.Parse()

	if err := run(*width, *height, *validation, *vertPath, *fragPath); err != nil {
		log.Fatalf("%+v\n", err)
	}
}

func run(width, height int, validation bool, vertPath, fragPath string) error {
	cfg := render.DefaultConfig()
	cfg.EnableValidation = validation
	cfg.FallbackExtent = core1_0.Extent2D{Width: width, Height: height}

	log.Printf("starting %s", cfg.AppName)

	vertCode, fragCode, err := loadShaders(vertPath, fragPath)
	if err != nil {
		return err
	}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return err
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow(cfg.AppName, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, int32(width), int32(height), sdl.WINDOW_SHOWN|sdl.WINDOW_VULKAN)
	if err != nil {
		return err
	}
	defer window.Destroy()

	globalDriver, err := core.CreateDriverFromProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	if err != nil {
		return err
	}

	start := hrtime.Now()
	ctx, err := render.New(globalDriver, window, cfg, vertCode, fragCode)
	if err != nil {
		return err
	}
	defer ctx.Destroy()
	log.Printf("vulkan context ready in %s", hrtime.Since(start))

	mainLoop()
	return nil
}

func loadShaders(vertPath, fragPath string) ([]byte, []byte, error) {
	var vertCode, fragCode []byte
	var group errgroup.Group

	group.Go(func() error {
		var err error
		vertCode, err = os.ReadFile(vertPath)
		return err
	})
	group.Go(func() error {
		var err error
		fragCode, err = os.ReadFile(fragPath)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	return vertCode, fragCode, nil
}

func mainLoop() {
appLoop:
	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				log.Println("user closed window, terminating event loop")
				break appLoop
			case *sdl.KeyboardEvent:
				if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
					log.Println("user pressed ESC, terminating event loop")
					break appLoop
				}
			}
		}
		sdl.Delay(16)
	}
}
