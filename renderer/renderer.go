// Package renderer bootstraps a Vulkan device and drives a minimal
// present loop against it: instance and validation setup, physical device
// selection, logical device and queues, swapchain, a fixed graphics
// pipeline, prerecorded command buffers, and the per-frame
// acquire/submit/present protocol. The window and event loop are supplied
// by the caller; see cmd/hello-vulkan for the SDL2 shell.
package renderer

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	core "github.com/vkngwrapper/core/v3"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

// Config carries the application-provided knobs for setup. The zero value is
// not useful; start from DefaultConfig.
type Config struct {
	AppName       string
	AppVersion    common.Version
	EngineName    string
	EngineVersion common.Version

	// APIVersion is the minimum Vulkan version requested from the driver.
	APIVersion common.APIVersion

	// EnableValidation controls the validation layer and the debug
	// messenger. With it enabled, setup fails if the layer is missing.
	EnableValidation bool

	// ClearColor is the color every frame starts from, RGBA in [0,1].
	ClearColor [4]float32

	// Logger receives setup progress and driver diagnostics. Defaults to
	// the logrus standard logger.
	Logger *logrus.Logger
}

// DefaultConfig returns the configuration the shell uses: validation on,
// black clear color.
func DefaultConfig() Config {
	return Config{
		AppName:          "Hello Vulkan",
		AppVersion:       common.CreateVersion(0, 1, 0),
		EngineName:       "vk",
		EngineVersion:    common.CreateVersion(0, 1, 0),
		APIVersion:       common.Vulkan1_0,
		EnableValidation: true,
		ClearColor:       [4]float32{0, 0, 0, 1},
	}
}

// Context owns every Vulkan resource created during Initialize. It is
// immutable after Initialize returns and invalid after Teardown. All methods
// must be called from the thread running the event loop; nothing here is
// safe for concurrent use.
type Context struct {
	log   *logrus.Entry
	clear core1_0.ClearValueFloat

	globalDriver core1_0.GlobalDriver
	instance     core1_0.CoreInstanceDriver
	device       core1_0.CoreDeviceDriver

	debugDriver    ext_debug_utils.ExtensionDriver
	debugMessenger ext_debug_utils.DebugUtilsMessenger

	surfaceExtension khr_surface.ExtensionDriver
	surface          khr_surface.Surface

	physicalDevice core1_0.PhysicalDevice
	queueIndices   QueueFamilyIndices
	graphicsQueue  core1_0.Queue
	presentQueue   core1_0.Queue

	swapchainExtension khr_swapchain.ExtensionDriver
	swapchain          khr_swapchain.Swapchain
	swapchainImages    []core1_0.Image
	swapchainFormat    core1_0.Format
	swapchainExtent    core1_0.Extent2D
	swapchainViews     []core1_0.ImageView

	renderPass     core1_0.RenderPass
	pipelineLayout core1_0.PipelineLayout
	pipeline       core1_0.Pipeline

	framebuffers   []core1_0.Framebuffer
	commandPool    core1_0.CommandPool
	commandBuffers []core1_0.CommandBuffer

	imageAvailable core1_0.Semaphore
	renderFinished core1_0.Semaphore

	teardown *teardownStack
}

// setup accumulates state while the context is being built. It exists only
// for the duration of Initialize; the finished Context never exposes it.
type setup struct {
	cfg    Config
	window *sdl.Window
	ctx    *Context
}

// Initialize negotiates capabilities, selects a device and builds the full
// resource chain for rendering to window. On failure every resource created
// so far is destroyed, in reverse creation order, before the error is
// returned. The window must have been created with the Vulkan flag.
func Initialize(window *sdl.Window, cfg Config) (*Context, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	s := &setup{
		cfg:    cfg,
		window: window,
		ctx: &Context{
			log:      logger.WithField("context", uuid.NewString()),
			clear:    core1_0.ClearValueFloat(cfg.ClearColor),
			teardown: &teardownStack{},
		},
	}

	if err := s.run(); err != nil {
		s.ctx.teardown.run(s.ctx.log)
		return nil, err
	}
	return s.ctx, nil
}

func (s *setup) run() error {
	driver, err := core.CreateDriverFromProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	if err != nil {
		return err
	}
	s.ctx.globalDriver = driver

	err = s.createInstance()
	if err != nil {
		return err
	}

	err = s.createSurface()
	if err != nil {
		return err
	}

	err = s.setupDebugMessenger()
	if err != nil {
		return err
	}

	err = s.pickPhysicalDevice()
	if err != nil {
		return err
	}

	err = s.createLogicalDevice()
	if err != nil {
		return err
	}

	err = s.createSwapchain()
	if err != nil {
		return err
	}

	err = s.createImageViews()
	if err != nil {
		return err
	}

	err = s.createRenderPass()
	if err != nil {
		return err
	}

	err = s.createPipeline()
	if err != nil {
		return err
	}

	err = s.createFramebuffers()
	if err != nil {
		return err
	}

	err = s.createCommandBuffers()
	if err != nil {
		return err
	}

	return s.createSemaphores()
}

// WaitIdle blocks until the device has finished all submitted work. The
// shell must call it before Teardown.
func (c *Context) WaitIdle() error {
	_, err := c.device.DeviceWaitIdle()
	return err
}

// Teardown destroys every resource the context owns, strictly in reverse
// creation order. The device must already be idle; Teardown performs no
// synchronization of its own. The context is invalid afterwards.
func (c *Context) Teardown() {
	c.teardown.run(c.log)
}
