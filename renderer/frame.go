package renderer

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
)

func (s *setup) createFramebuffers() error {
	for _, imageView := range s.ctx.swapchainViews {
		framebuffer, _, err := s.ctx.device.CreateFramebuffer(nil, core1_0.FramebufferCreateInfo{
			RenderPass: s.ctx.renderPass,
			Layers:     1,
			Attachments: []core1_0.ImageView{
				imageView,
			},
			Width:  s.ctx.swapchainExtent.Width,
			Height: s.ctx.swapchainExtent.Height,
		})
		if err != nil {
			return errors.Wrap(err, "creating framebuffer")
		}

		s.ctx.framebuffers = append(s.ctx.framebuffers, framebuffer)
	}

	framebuffers := s.ctx.framebuffers
	s.ctx.teardown.push("framebuffers", func() {
		for _, framebuffer := range framebuffers {
			s.ctx.device.DestroyFramebuffer(framebuffer, nil)
		}
	})

	return nil
}

// createCommandBuffers allocates one primary command buffer per framebuffer
// and records all of them up front. The recorded contents never change, so
// the buffers are submitted as-is for the lifetime of the context.
func (s *setup) createCommandBuffers() error {
	pool, _, err := s.ctx.device.CreateCommandPool(nil, core1_0.CommandPoolCreateInfo{
		QueueFamilyIndex: *s.ctx.queueIndices.GraphicsFamily,
	})
	if err != nil {
		return errors.Wrap(err, "creating command pool")
	}

	s.ctx.commandPool = pool
	// Destroying the pool frees its command buffers with it.
	s.ctx.teardown.push("command pool", func() {
		s.ctx.device.DestroyCommandPool(s.ctx.commandPool, nil)
	})

	buffers, _, err := s.ctx.device.AllocateCommandBuffers(core1_0.CommandBufferAllocateInfo{
		CommandPool:        pool,
		Level:              core1_0.CommandBufferLevelPrimary,
		CommandBufferCount: len(s.ctx.framebuffers),
	})
	if err != nil {
		return errors.Wrap(err, "allocating command buffers")
	}
	s.ctx.commandBuffers = buffers

	for bufferIdx, buffer := range buffers {
		_, err = s.ctx.device.BeginCommandBuffer(buffer, core1_0.CommandBufferBeginInfo{})
		if err != nil {
			return errors.Wrap(err, "beginning command buffer")
		}

		err = s.ctx.device.CmdBeginRenderPass(buffer, core1_0.SubpassContentsInline,
			core1_0.RenderPassBeginInfo{
				RenderPass:  s.ctx.renderPass,
				Framebuffer: s.ctx.framebuffers[bufferIdx],
				RenderArea: core1_0.Rect2D{
					Offset: core1_0.Offset2D{X: 0, Y: 0},
					Extent: s.ctx.swapchainExtent,
				},
				ClearValues: []core1_0.ClearValue{
					s.ctx.clear,
				},
			})
		if err != nil {
			return errors.Wrap(err, "recording render pass begin")
		}

		s.ctx.device.CmdBindPipeline(buffer, core1_0.PipelineBindPointGraphics, s.ctx.pipeline)
		s.ctx.device.CmdDraw(buffer, 3, 1, 0, 0)
		s.ctx.device.CmdEndRenderPass(buffer)

		_, err = s.ctx.device.EndCommandBuffer(buffer)
		if err != nil {
			return errors.Wrap(err, "ending command buffer")
		}
	}

	return nil
}
