package renderer

import (
	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2/v3"
)

// Backend identifies the window system the presentation surface binds to.
// Each backend has its own surface type at the driver level; everything past
// surface creation is backend-agnostic.
type Backend int

const (
	BackendUnknown Backend = iota
	BackendXlib
	BackendXcb
	BackendWayland
	BackendWin32
)

func (b Backend) String() string {
	switch b {
	case BackendXlib:
		return "xlib"
	case BackendXcb:
		return "xcb"
	case BackendWayland:
		return "wayland"
	case BackendWin32:
		return "win32"
	default:
		return "unknown"
	}
}

// backendFromVideoDriver maps an SDL video driver name onto a surface
// backend. SDL reports X11 regardless of whether it speaks xlib or xcb
// underneath; the xlib surface path covers both.
func backendFromVideoDriver(driver string) (Backend, error) {
	switch driver {
	case "x11":
		return BackendXlib, nil
	case "xcb":
		return BackendXcb, nil
	case "wayland":
		return BackendWayland, nil
	case "windows":
		return BackendWin32, nil
	default:
		return BackendUnknown, errors.Wrapf(ErrUnsupportedBackend, "video driver %q", driver)
	}
}

// wsiExtensionName returns the instance extension that provides surface
// creation for the backend.
func wsiExtensionName(b Backend) string {
	switch b {
	case BackendXlib:
		return "VK_KHR_xlib_surface"
	case BackendXcb:
		return "VK_KHR_xcb_surface"
	case BackendWayland:
		return "VK_KHR_wayland_surface"
	case BackendWin32:
		return "VK_KHR_win32_surface"
	default:
		return ""
	}
}

func (s *setup) createSurface() error {
	driver, err := sdl.GetCurrentVideoDriver()
	if err != nil {
		return err
	}
	backend, err := backendFromVideoDriver(driver)
	if err != nil {
		return err
	}

	s.ctx.surfaceExtension = khr_surface.CreateExtensionDriverFromCoreDriver(s.ctx.instance)

	// The SDL integration issues the backend-specific vkCreate*SurfaceKHR
	// call for whichever of the four backends is active.
	surface, err := vkng_sdl2.CreateSurface(s.ctx.instance.Instance(), s.ctx.surfaceExtension, s.window)
	if err != nil {
		return errors.Wrapf(err, "creating %s surface", backend)
	}
	s.ctx.surface = surface

	s.ctx.teardown.push("surface", func() {
		s.ctx.surfaceExtension.DestroySurface(s.ctx.surface, nil)
	})

	s.ctx.log.WithField("backend", backend.String()).
		WithField("extension", wsiExtensionName(backend)).
		Info("presentation surface created")

	return nil
}
