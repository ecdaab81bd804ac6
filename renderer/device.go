package renderer

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

var deviceExtensions = []string{khr_swapchain.ExtensionName}

// QueueFamilyIndices holds the chosen graphics-capable and present-capable
// queue family indices. They may name the same family; the swapchain sharing
// mode depends on whether they do.
type QueueFamilyIndices struct {
	GraphicsFamily *int
	PresentFamily  *int
}

func (i *QueueFamilyIndices) IsComplete() bool {
	return i.GraphicsFamily != nil && i.PresentFamily != nil
}

// unique returns the deduplicated set of family indices needed for device
// creation: one entry when graphics and present coincide, two otherwise.
func (i *QueueFamilyIndices) unique() []int {
	families := []int{*i.GraphicsFamily}
	if *i.PresentFamily != families[0] {
		families = append(families, *i.PresentFamily)
	}
	return families
}

// DeviceCapabilities is an immutable snapshot of one candidate GPU, taken
// fresh during selection and discarded afterwards. Suitability is decided
// from the snapshot alone, which keeps the policy testable without a driver.
type DeviceCapabilities struct {
	Name           string
	DeviceType     core1_0.PhysicalDeviceType
	GeometryShader bool
	Queues         QueueFamilyIndices
	Extensions     map[string]struct{}
	Formats        []khr_surface.SurfaceFormat
	PresentModes   []khr_surface.PresentMode
}

// suitable reports whether the device can run this renderer, and if not,
// the first failing requirement.
func (caps *DeviceCapabilities) suitable() (bool, string) {
	if caps.DeviceType != core1_0.PhysicalDeviceTypeDiscreteGPU {
		return false, "not a discrete GPU"
	}
	if !caps.GeometryShader {
		return false, "no geometry shader support"
	}
	if !caps.Queues.IsComplete() {
		return false, "missing graphics or present queue family"
	}
	for _, ext := range deviceExtensions {
		if _, ok := caps.Extensions[ext]; !ok {
			return false, "missing device extension " + ext
		}
	}
	if len(caps.Formats) == 0 {
		return false, "no surface formats"
	}
	if len(caps.PresentModes) == 0 {
		return false, "no present modes"
	}
	return true, ""
}

func (s *setup) findQueueFamilies(device core1_0.PhysicalDevice) (QueueFamilyIndices, error) {
	indices := QueueFamilyIndices{}
	queueFamilies := s.ctx.instance.GetPhysicalDeviceQueueFamilyProperties(device)

	for queueFamilyIdx, queueFamily := range queueFamilies {
		if indices.GraphicsFamily == nil && (queueFamily.QueueFlags&core1_0.QueueGraphics) != 0 {
			index := queueFamilyIdx
			indices.GraphicsFamily = &index
		}

		if indices.PresentFamily == nil {
			supported, _, err := s.ctx.surfaceExtension.GetPhysicalDeviceSurfaceSupport(s.ctx.surface, device, queueFamilyIdx)
			if err != nil {
				return indices, errors.Wrap(err, "querying surface support")
			}
			if supported {
				index := queueFamilyIdx
				indices.PresentFamily = &index
			}
		}

		if indices.IsComplete() {
			break
		}
	}

	return indices, nil
}

// snapshotCapabilities gathers everything the suitability policy needs to
// know about one candidate device.
func (s *setup) snapshotCapabilities(device core1_0.PhysicalDevice) (DeviceCapabilities, error) {
	var caps DeviceCapabilities

	properties, err := s.ctx.instance.GetPhysicalDeviceProperties(device)
	if err != nil {
		return caps, errors.Wrap(err, "querying device properties")
	}
	caps.Name = properties.DriverName
	caps.DeviceType = properties.DriverType

	features := s.ctx.instance.GetPhysicalDeviceFeatures(device)
	caps.GeometryShader = features.GeometryShader

	caps.Queues, err = s.findQueueFamilies(device)
	if err != nil {
		return caps, err
	}

	extensions, _, err := s.ctx.instance.EnumerateDeviceExtensionProperties(device)
	if err != nil {
		return caps, errors.Wrap(err, "enumerating device extensions")
	}
	caps.Extensions = make(map[string]struct{}, len(extensions))
	for name := range extensions {
		caps.Extensions[name] = struct{}{}
	}

	caps.Formats, _, err = s.ctx.surfaceExtension.GetPhysicalDeviceSurfaceFormats(s.ctx.surface, device)
	if err != nil {
		return caps, errors.Wrap(err, "querying surface formats")
	}

	caps.PresentModes, _, err = s.ctx.surfaceExtension.GetPhysicalDeviceSurfacePresentModes(s.ctx.surface, device)
	if err != nil {
		return caps, errors.Wrap(err, "querying present modes")
	}

	return caps, nil
}

// pickPhysicalDevice selects the first enumerated device that passes every
// suitability check. Enumeration order comes from the driver and is not
// guaranteed stable across runs.
func (s *setup) pickPhysicalDevice() error {
	physicalDevices, _, err := s.ctx.instance.EnumeratePhysicalDevices()
	if err != nil {
		return errors.Wrap(err, "enumerating physical devices")
	}

	for _, device := range physicalDevices {
		caps, err := s.snapshotCapabilities(device)
		if err != nil {
			return err
		}

		ok, reason := caps.suitable()
		if !ok {
			s.ctx.log.WithField("device", caps.Name).Warnf("physical device not suitable: %s", reason)
			continue
		}

		s.ctx.log.WithField("device", caps.Name).Info("selected physical device")
		s.ctx.physicalDevice = device
		s.ctx.queueIndices = caps.Queues
		return nil
	}

	return ErrNoSuitableDevice
}
