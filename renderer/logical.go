package renderer

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_portability_subset"
)

func (s *setup) createLogicalDevice() error {
	var queueOptions []core1_0.DeviceQueueCreateInfo
	for _, family := range s.ctx.queueIndices.unique() {
		queueOptions = append(queueOptions, core1_0.DeviceQueueCreateInfo{
			QueueFamilyIndex: family,
			QueuePriorities:  []float32{1.0},
		})
	}

	extensionNames := append([]string{}, deviceExtensions...)

	// Portability (MoltenVK and friends) requires this extension to be
	// enabled on devices that advertise it.
	extensions, _, err := s.ctx.instance.EnumerateDeviceExtensionProperties(s.ctx.physicalDevice)
	if err != nil {
		return errors.Wrap(err, "enumerating device extensions")
	}
	_, portability := extensions[khr_portability_subset.ExtensionName]
	if portability {
		extensionNames = append(extensionNames, khr_portability_subset.ExtensionName)
	}

	s.ctx.device, _, err = s.ctx.instance.CreateDevice(s.ctx.physicalDevice, nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos:      queueOptions,
		EnabledFeatures:       &core1_0.PhysicalDeviceFeatures{},
		EnabledExtensionNames: extensionNames,
	})
	if err != nil {
		return errors.Wrap(err, "creating logical device")
	}

	s.ctx.teardown.push("logical device", func() {
		s.ctx.device.DestroyDevice(nil)
	})

	s.ctx.graphicsQueue = s.ctx.device.GetQueue(*s.ctx.queueIndices.GraphicsFamily, 0)
	s.ctx.presentQueue = s.ctx.device.GetQueue(*s.ctx.queueIndices.PresentFamily, 0)

	return nil
}
