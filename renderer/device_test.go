package renderer

import (
	"testing"

	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

func intPtr(v int) *int {
	return &v
}

// suitableCaps returns a capability record that passes every check.
func suitableCaps() DeviceCapabilities {
	return DeviceCapabilities{
		Name:           "fake-dgpu",
		DeviceType:     core1_0.PhysicalDeviceTypeDiscreteGPU,
		GeometryShader: true,
		Queues: QueueFamilyIndices{
			GraphicsFamily: intPtr(0),
			PresentFamily:  intPtr(0),
		},
		Extensions: map[string]struct{}{
			khr_swapchain.ExtensionName: {},
		},
		Formats: []khr_surface.SurfaceFormat{
			{Format: core1_0.FormatB8G8R8A8SRGB, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear},
		},
		PresentModes: []khr_surface.PresentMode{khr_surface.PresentModeFIFO},
	}
}

func TestSuitableDevice(t *testing.T) {
	caps := suitableCaps()
	if ok, reason := caps.suitable(); !ok {
		t.Fatalf("fully capable device rejected: %s", reason)
	}
}

func TestSuitabilityEachCheckFalsifiable(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DeviceCapabilities)
	}{
		{"integrated gpu", func(c *DeviceCapabilities) {
			c.DeviceType = core1_0.PhysicalDeviceTypeIntegratedGPU
		}},
		{"no geometry shader", func(c *DeviceCapabilities) {
			c.GeometryShader = false
		}},
		{"no graphics family", func(c *DeviceCapabilities) {
			c.Queues.GraphicsFamily = nil
		}},
		{"no present family", func(c *DeviceCapabilities) {
			c.Queues.PresentFamily = nil
		}},
		{"missing swapchain extension", func(c *DeviceCapabilities) {
			c.Extensions = map[string]struct{}{}
		}},
		{"no surface formats", func(c *DeviceCapabilities) {
			c.Formats = nil
		}},
		{"no present modes", func(c *DeviceCapabilities) {
			c.PresentModes = nil
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := suitableCaps()
			tt.mutate(&caps)

			ok, reason := caps.suitable()
			if ok {
				t.Error("device accepted despite failing requirement")
			}
			if reason == "" {
				t.Error("rejection carries no reason")
			}
		})
	}
}

func TestUniqueQueueFamilies(t *testing.T) {
	shared := QueueFamilyIndices{GraphicsFamily: intPtr(2), PresentFamily: intPtr(2)}
	if got := shared.unique(); len(got) != 1 || got[0] != 2 {
		t.Errorf("shared family: got %v, want [2]", got)
	}

	split := QueueFamilyIndices{GraphicsFamily: intPtr(0), PresentFamily: intPtr(1)}
	if got := split.unique(); len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("split families: got %v, want [0 1]", got)
	}
}

func TestIsComplete(t *testing.T) {
	indices := QueueFamilyIndices{}
	if indices.IsComplete() {
		t.Error("empty indices reported complete")
	}

	indices.GraphicsFamily = intPtr(0)
	if indices.IsComplete() {
		t.Error("graphics-only indices reported complete")
	}

	indices.PresentFamily = intPtr(0)
	if !indices.IsComplete() {
		t.Error("resolved indices reported incomplete")
	}
}
