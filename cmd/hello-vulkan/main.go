// Command hello-vulkan opens an 800x600 window and clears it through a
// fixed Vulkan pipeline drawing a single shader-defined triangle, until the
// window is closed.
package main

import (
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/MrGunflame/hello-vulkan/renderer"
)

func main() {
	// Vulkan and SDL both require the thread that created the window.
	runtime.LockOSThread()

	log := logrus.StandardLogger()

	if err := run(log); err != nil {
		log.Fatalf("%+v", err)
	}
}

func run(log *logrus.Logger) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return err
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow("Hello Vulkan",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		800, 600,
		sdl.WINDOW_SHOWN|sdl.WINDOW_VULKAN)
	if err != nil {
		return err
	}
	defer window.Destroy()

	cfg := renderer.DefaultConfig()
	cfg.Logger = log

	ctx, err := renderer.Initialize(window, cfg)
	if err != nil {
		return err
	}

	err = eventLoop(ctx)

	// Rendering has stopped for good; teardown may only begin once the
	// device has finished the frames already submitted.
	if idleErr := ctx.WaitIdle(); idleErr != nil && err == nil {
		err = idleErr
	}
	ctx.Teardown()

	return err
}

func eventLoop(ctx *renderer.Context) error {
	rendering := true

	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return nil
			case *sdl.WindowEvent:
				switch e.Event {
				case sdl.WINDOWEVENT_MINIMIZED:
					rendering = false
				case sdl.WINDOWEVENT_RESTORED:
					rendering = true
				}
			}
		}

		if rendering {
			if err := ctx.RenderFrame(); err != nil {
				return err
			}
		}
	}
}
