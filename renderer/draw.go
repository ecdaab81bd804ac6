package renderer

import (
	"github.com/cockroachdb/errors"
	"github.com/loov/hrtime"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

func (s *setup) createSemaphores() error {
	imageAvailable, _, err := s.ctx.device.CreateSemaphore(nil, core1_0.SemaphoreCreateInfo{})
	if err != nil {
		return errors.Wrap(err, "creating image-available semaphore")
	}
	s.ctx.imageAvailable = imageAvailable
	s.ctx.teardown.push("image-available semaphore", func() {
		s.ctx.device.DestroySemaphore(s.ctx.imageAvailable, nil)
	})

	renderFinished, _, err := s.ctx.device.CreateSemaphore(nil, core1_0.SemaphoreCreateInfo{})
	if err != nil {
		return errors.Wrap(err, "creating render-finished semaphore")
	}
	s.ctx.renderFinished = renderFinished
	s.ctx.teardown.push("render-finished semaphore", func() {
		s.ctx.device.DestroySemaphore(s.ctx.renderFinished, nil)
	})

	return nil
}

// RenderFrame renders and presents one frame: acquire the next swapchain
// image, submit its prerecorded command buffer, present it, then wait for
// the present queue to go idle. The single semaphore pair plus the final
// idle wait keep exactly one frame in flight; there is no overlap between
// host and device work. Errors are unrecoverable at this layer, including
// out-of-date swapchains.
func (c *Context) RenderFrame() error {
	frameStart := hrtime.Now()

	imageIndex, _, err := c.swapchainExtension.AcquireNextImage(c.swapchain, common.NoTimeout, &c.imageAvailable, nil)
	if err != nil {
		return errors.Wrap(err, "acquiring swapchain image")
	}

	_, err = c.device.QueueSubmit(c.graphicsQueue, nil,
		core1_0.SubmitInfo{
			WaitSemaphores:   []core1_0.Semaphore{c.imageAvailable},
			WaitDstStageMask: []core1_0.PipelineStageFlags{core1_0.PipelineStageColorAttachmentOutput},
			CommandBuffers:   []core1_0.CommandBuffer{c.commandBuffers[imageIndex]},
			SignalSemaphores: []core1_0.Semaphore{c.renderFinished},
		},
	)
	if err != nil {
		return errors.Wrap(err, "submitting frame")
	}

	_, err = c.swapchainExtension.QueuePresent(c.presentQueue, khr_swapchain.PresentInfo{
		WaitSemaphores: []core1_0.Semaphore{c.renderFinished},
		Swapchains:     []khr_swapchain.Swapchain{c.swapchain},
		ImageIndices:   []int{imageIndex},
	})
	if err != nil {
		return errors.Wrap(err, "presenting frame")
	}

	// Drain before handing control back so the shared semaphores are free
	// for the next frame.
	_, err = c.device.QueueWaitIdle(c.presentQueue)
	if err != nil {
		return errors.Wrap(err, "waiting for present queue")
	}

	c.log.WithField("image", imageIndex).
		WithField("frame_time", hrtime.Since(frameStart)).
		Trace("frame presented")

	return nil
}
