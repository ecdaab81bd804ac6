package renderer

import (
	"testing"

	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
)

var (
	preferredFormat = khr_surface.SurfaceFormat{
		Format:     core1_0.FormatB8G8R8A8SRGB,
		ColorSpace: khr_surface.ColorSpaceSRGBNonlinear,
	}
	unormFormat = khr_surface.SurfaceFormat{
		Format:     core1_0.FormatB8G8R8A8UnsignedNormalized,
		ColorSpace: khr_surface.ColorSpaceSRGBNonlinear,
	}
)

func TestChooseSurfaceFormatPrefersSRGB(t *testing.T) {
	// The preferred format wins regardless of its position in the list.
	got := chooseSurfaceFormat([]khr_surface.SurfaceFormat{unormFormat, preferredFormat})
	if got != preferredFormat {
		t.Errorf("got %+v, want BGRA sRGB", got)
	}

	got = chooseSurfaceFormat([]khr_surface.SurfaceFormat{preferredFormat, unormFormat})
	if got != preferredFormat {
		t.Errorf("got %+v, want BGRA sRGB", got)
	}
}

func TestChooseSurfaceFormatFallsBackToFirst(t *testing.T) {
	wrongSpace := khr_surface.SurfaceFormat{
		Format:     core1_0.FormatB8G8R8A8SRGB,
		ColorSpace: khr_surface.ColorSpace(1),
	}
	got := chooseSurfaceFormat([]khr_surface.SurfaceFormat{wrongSpace, unormFormat})
	if got != wrongSpace {
		t.Errorf("got %+v, want first available format", got)
	}
}

func TestChoosePresentMode(t *testing.T) {
	got := choosePresentMode([]khr_surface.PresentMode{
		khr_surface.PresentModeImmediate,
		khr_surface.PresentModeMailbox,
		khr_surface.PresentModeFIFO,
	})
	if got != khr_surface.PresentModeMailbox {
		t.Errorf("got %v, want mailbox when offered", got)
	}

	got = choosePresentMode([]khr_surface.PresentMode{khr_surface.PresentModeImmediate})
	if got != khr_surface.PresentModeFIFO {
		t.Errorf("got %v, want FIFO fallback", got)
	}
}

func TestChooseExtentUsesCurrentExtent(t *testing.T) {
	caps := &khr_surface.SurfaceCapabilities{
		CurrentExtent: core1_0.Extent2D{Width: 800, Height: 600},
	}

	got := chooseExtent(caps, 1024, 768)
	if got.Width != 800 || got.Height != 600 {
		t.Errorf("got %dx%d, want the surface's 800x600", got.Width, got.Height)
	}
}

func TestChooseExtentClampsDrawableSize(t *testing.T) {
	caps := &khr_surface.SurfaceCapabilities{
		CurrentExtent:  core1_0.Extent2D{Width: -1, Height: -1},
		MinImageExtent: core1_0.Extent2D{Width: 100, Height: 100},
		MaxImageExtent: core1_0.Extent2D{Width: 2000, Height: 2000},
	}

	tests := []struct {
		name                  string
		width, height         int
		wantWidth, wantHeight int
	}{
		{"within bounds", 800, 600, 800, 600},
		{"below minimum", 50, 20, 100, 100},
		{"above maximum", 4096, 4096, 2000, 2000},
		{"mixed", 50, 4096, 100, 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := chooseExtent(caps, tt.width, tt.height)
			if got.Width != tt.wantWidth || got.Height != tt.wantHeight {
				t.Errorf("got %dx%d, want %dx%d", got.Width, got.Height, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestChooseImageCount(t *testing.T) {
	unbounded := &khr_surface.SurfaceCapabilities{MinImageCount: 2, MaxImageCount: 0}
	if got := chooseImageCount(unbounded); got != 3 {
		t.Errorf("unbounded: got %d, want min+1 = 3", got)
	}

	capped := &khr_surface.SurfaceCapabilities{MinImageCount: 2, MaxImageCount: 2}
	if got := chooseImageCount(capped); got != 2 {
		t.Errorf("capped: got %d, want the maximum 2", got)
	}
}

func TestSharingPolicy(t *testing.T) {
	shared := QueueFamilyIndices{GraphicsFamily: intPtr(0), PresentFamily: intPtr(0)}
	mode, families := sharingPolicy(shared)
	if mode != core1_0.SharingModeExclusive {
		t.Errorf("shared family: got mode %v, want exclusive", mode)
	}
	if families != nil {
		t.Errorf("exclusive sharing should list no families, got %v", families)
	}

	split := QueueFamilyIndices{GraphicsFamily: intPtr(0), PresentFamily: intPtr(1)}
	mode, families = sharingPolicy(split)
	if mode != core1_0.SharingModeConcurrent {
		t.Errorf("split families: got mode %v, want concurrent", mode)
	}
	if len(families) != 2 || families[0] != 0 || families[1] != 1 {
		t.Errorf("concurrent sharing families: got %v, want [0 1]", families)
	}
}
