package renderer

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
)

var validationLayers = []string{"VK_LAYER_KHRONOS_validation"}

func (s *setup) createInstance() error {
	instanceOptions := core1_0.InstanceCreateInfo{
		ApplicationName:    s.cfg.AppName,
		ApplicationVersion: s.cfg.AppVersion,
		EngineName:         s.cfg.EngineName,
		EngineVersion:      s.cfg.EngineVersion,
		APIVersion:         s.cfg.APIVersion,
	}

	extensions, _, err := s.ctx.globalDriver.AvailableExtensions()
	if err != nil {
		return errors.Wrap(err, "enumerating instance extensions")
	}

	// The window system decides which surface extensions are required:
	// VK_KHR_surface plus the backend-specific one (xlib/xcb/wayland/win32).
	wsiExtensions := s.window.VulkanGetInstanceExtensions()
	for _, ext := range wsiExtensions {
		_, hasExt := extensions[ext]
		if !hasExt {
			return errors.Newf("required window-system extension %s is not available", ext)
		}
		instanceOptions.EnabledExtensionNames = append(instanceOptions.EnabledExtensionNames, ext)
	}

	if s.cfg.EnableValidation {
		instanceOptions.EnabledExtensionNames = append(instanceOptions.EnabledExtensionNames, ext_debug_utils.ExtensionName)
	}

	_, enumerationSupported := extensions[khr_portability_enumeration.ExtensionName]
	if enumerationSupported {
		instanceOptions.EnabledExtensionNames = append(instanceOptions.EnabledExtensionNames, khr_portability_enumeration.ExtensionName)
		instanceOptions.Flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}

	layers, _, err := s.ctx.globalDriver.AvailableLayers()
	if err != nil {
		return errors.Wrap(err, "enumerating instance layers")
	}

	if s.cfg.EnableValidation {
		for _, layer := range validationLayers {
			_, hasLayer := layers[layer]
			if !hasLayer {
				return errors.Wrapf(ErrLayerUnavailable, "layer %s", layer)
			}
			instanceOptions.EnabledLayerNames = append(instanceOptions.EnabledLayerNames, layer)
		}

		// Chaining the messenger options here covers instance creation and
		// destruction, which the messenger object itself cannot observe.
		instanceOptions.Next = s.debugMessengerOptions()
	}

	s.ctx.instance, _, err = s.ctx.globalDriver.CreateInstance(nil, instanceOptions)
	if err != nil {
		return errors.Wrap(err, "creating instance")
	}

	s.ctx.teardown.push("instance", func() {
		s.ctx.instance.DestroyInstance(nil)
	})

	s.ctx.log.WithFields(logrus.Fields{
		"layers":     instanceOptions.EnabledLayerNames,
		"extensions": instanceOptions.EnabledExtensionNames,
	}).Info("instance created")

	return nil
}
