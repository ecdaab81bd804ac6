package renderer

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

// chooseSurfaceFormat prefers 8-bit BGRA sRGB with the sRGB-nonlinear color
// space and otherwise takes the first format the surface offers. The
// candidate list is never empty for a selected device.
func chooseSurfaceFormat(available []khr_surface.SurfaceFormat) khr_surface.SurfaceFormat {
	for _, format := range available {
		if format.Format == core1_0.FormatB8G8R8A8SRGB && format.ColorSpace == khr_surface.ColorSpaceSRGBNonlinear {
			return format
		}
	}
	return available[0]
}

// choosePresentMode returns mailbox when offered, else FIFO. FIFO is the
// only mode the standard guarantees, so this never fails.
func choosePresentMode(available []khr_surface.PresentMode) khr_surface.PresentMode {
	for _, presentMode := range available {
		if presentMode == khr_surface.PresentModeMailbox {
			return presentMode
		}
	}
	return khr_surface.PresentModeFIFO
}

// chooseExtent uses the surface's current extent verbatim when the surface
// defines one. The all-bits-set sentinel (reported as -1 here) means the
// window decides, in which case the drawable size is clamped into the
// surface's supported range.
func chooseExtent(capabilities *khr_surface.SurfaceCapabilities, drawableWidth, drawableHeight int) core1_0.Extent2D {
	if capabilities.CurrentExtent.Width != -1 {
		return capabilities.CurrentExtent
	}

	width := drawableWidth
	height := drawableHeight

	if width < capabilities.MinImageExtent.Width {
		width = capabilities.MinImageExtent.Width
	}
	if width > capabilities.MaxImageExtent.Width {
		width = capabilities.MaxImageExtent.Width
	}
	if height < capabilities.MinImageExtent.Height {
		height = capabilities.MinImageExtent.Height
	}
	if height > capabilities.MaxImageExtent.Height {
		height = capabilities.MaxImageExtent.Height
	}

	return core1_0.Extent2D{Width: width, Height: height}
}

// chooseImageCount asks for one image more than the minimum so the driver
// rarely blocks on acquire. A maximum of 0 means unbounded.
func chooseImageCount(capabilities *khr_surface.SurfaceCapabilities) int {
	imageCount := capabilities.MinImageCount + 1
	if capabilities.MaxImageCount > 0 && imageCount > capabilities.MaxImageCount {
		imageCount = capabilities.MaxImageCount
	}
	return imageCount
}

// sharingPolicy picks concurrent sharing across both families when graphics
// and present live in different ones, exclusive otherwise.
func sharingPolicy(indices QueueFamilyIndices) (core1_0.SharingMode, []int) {
	if *indices.GraphicsFamily != *indices.PresentFamily {
		return core1_0.SharingModeConcurrent, []int{*indices.GraphicsFamily, *indices.PresentFamily}
	}
	return core1_0.SharingModeExclusive, nil
}

func (s *setup) createSwapchain() error {
	s.ctx.swapchainExtension = khr_swapchain.CreateExtensionDriverFromCoreDriver(s.ctx.device)

	capabilities, _, err := s.ctx.surfaceExtension.GetPhysicalDeviceSurfaceCapabilities(s.ctx.surface, s.ctx.physicalDevice)
	if err != nil {
		return errors.Wrap(err, "querying surface capabilities")
	}

	formats, _, err := s.ctx.surfaceExtension.GetPhysicalDeviceSurfaceFormats(s.ctx.surface, s.ctx.physicalDevice)
	if err != nil {
		return errors.Wrap(err, "querying surface formats")
	}

	presentModes, _, err := s.ctx.surfaceExtension.GetPhysicalDeviceSurfacePresentModes(s.ctx.surface, s.ctx.physicalDevice)
	if err != nil {
		return errors.Wrap(err, "querying present modes")
	}

	surfaceFormat := chooseSurfaceFormat(formats)
	presentMode := choosePresentMode(presentModes)

	drawableWidth, drawableHeight := s.window.VulkanGetDrawableSize()
	extent := chooseExtent(capabilities, int(drawableWidth), int(drawableHeight))

	sharingMode, queueFamilyIndices := sharingPolicy(s.ctx.queueIndices)

	swapchain, _, err := s.ctx.swapchainExtension.CreateSwapchain(nil, khr_swapchain.SwapchainCreateInfo{
		Surface: s.ctx.surface,

		MinImageCount:    chooseImageCount(capabilities),
		ImageFormat:      surfaceFormat.Format,
		ImageColorSpace:  surfaceFormat.ColorSpace,
		ImageExtent:      extent,
		ImageArrayLayers: 1,
		ImageUsage:       core1_0.ImageUsageColorAttachment,

		ImageSharingMode:   sharingMode,
		QueueFamilyIndices: queueFamilyIndices,

		PreTransform:   capabilities.CurrentTransform,
		CompositeAlpha: khr_surface.CompositeAlphaOpaque,
		PresentMode:    presentMode,
		Clipped:        true,
	})
	if err != nil {
		return errors.Wrap(err, "creating swapchain")
	}

	s.ctx.swapchain = swapchain
	s.ctx.swapchainFormat = surfaceFormat.Format
	s.ctx.swapchainExtent = extent

	s.ctx.teardown.push("swapchain", func() {
		s.ctx.swapchainExtension.DestroySwapchain(s.ctx.swapchain, nil)
	})

	s.ctx.swapchainImages, _, err = s.ctx.swapchainExtension.GetSwapchainImages(swapchain)
	if err != nil {
		return errors.Wrap(err, "retrieving swapchain images")
	}

	s.ctx.log.WithFields(logrus.Fields{
		"format":       surfaceFormat.Format.String(),
		"present_mode": presentMode.String(),
		"images":       len(s.ctx.swapchainImages),
	}).Info("swapchain created")

	return nil
}

func (s *setup) createImageViews() error {
	for _, image := range s.ctx.swapchainImages {
		view, _, err := s.ctx.device.CreateImageView(nil, core1_0.ImageViewCreateInfo{
			Image:    image,
			ViewType: core1_0.ImageViewType2D,
			Format:   s.ctx.swapchainFormat,
			Components: core1_0.ComponentMapping{
				R: core1_0.ComponentSwizzleIdentity,
				G: core1_0.ComponentSwizzleIdentity,
				B: core1_0.ComponentSwizzleIdentity,
				A: core1_0.ComponentSwizzleIdentity,
			},
			SubresourceRange: core1_0.ImageSubresourceRange{
				AspectMask:     core1_0.ImageAspectColor,
				BaseMipLevel:   0,
				LevelCount:     1,
				BaseArrayLayer: 0,
				LayerCount:     1,
			},
		})
		if err != nil {
			return errors.Wrap(err, "creating swapchain image view")
		}

		s.ctx.swapchainViews = append(s.ctx.swapchainViews, view)
	}

	views := s.ctx.swapchainViews
	s.ctx.teardown.push("image views", func() {
		for _, view := range views {
			s.ctx.device.DestroyImageView(view, nil)
		}
	})

	return nil
}
