package renderer

import (
	"embed"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

//go:embed shaders/vert.spv shaders/frag.spv
var shaderFS embed.FS

// shaderWords reinterprets a SPIR-V binary as the 32-bit little-endian words
// the driver consumes. A byte length that is not a whole number of words
// means the blob was truncated or is not SPIR-V at all.
func shaderWords(blob []byte) ([]uint32, error) {
	if len(blob)%4 != 0 {
		return nil, errors.Wrapf(ErrMalformedShader, "%d bytes is not word-aligned", len(blob))
	}

	words := make([]uint32, len(blob)/4)
	for i := range words {
		b := blob[i*4:]
		words[i] = uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	}
	return words, nil
}

func (s *setup) createShaderModule(path string) (core1_0.ShaderModule, error) {
	blob, err := shaderFS.ReadFile(path)
	if err != nil {
		return core1_0.ShaderModule{}, errors.Wrapf(err, "reading shader %s", path)
	}

	words, err := shaderWords(blob)
	if err != nil {
		return core1_0.ShaderModule{}, errors.Wrapf(err, "shader %s", path)
	}

	module, _, err := s.ctx.device.CreateShaderModule(nil, core1_0.ShaderModuleCreateInfo{
		Code: words,
	})
	if err != nil {
		return core1_0.ShaderModule{}, errors.Wrapf(err, "creating shader module %s", path)
	}
	return module, nil
}

func (s *setup) createRenderPass() error {
	renderPass, _, err := s.ctx.device.CreateRenderPass(nil, core1_0.RenderPassCreateInfo{
		Attachments: []core1_0.AttachmentDescription{
			{
				Format:         s.ctx.swapchainFormat,
				Samples:        core1_0.Samples1,
				LoadOp:         core1_0.AttachmentLoadOpClear,
				StoreOp:        core1_0.AttachmentStoreOpStore,
				StencilLoadOp:  core1_0.AttachmentLoadOpDontCare,
				StencilStoreOp: core1_0.AttachmentStoreOpDontCare,
				InitialLayout:  core1_0.ImageLayoutUndefined,
				FinalLayout:    khr_swapchain.ImageLayoutPresentSrc,
			},
		},
		Subpasses: []core1_0.SubpassDescription{
			{
				PipelineBindPoint: core1_0.PipelineBindPointGraphics,
				ColorAttachments: []core1_0.AttachmentReference{
					{
						Attachment: 0,
						Layout:     core1_0.ImageLayoutColorAttachmentOptimal,
					},
				},
			},
		},
		// Color writes must not start until the presentation engine has
		// released the image, which is signalled at the color-attachment
		// stage by the acquire semaphore.
		SubpassDependencies: []core1_0.SubpassDependency{
			{
				SrcSubpass: core1_0.SubpassExternal,
				DstSubpass: 0,

				SrcStageMask:  core1_0.PipelineStageColorAttachmentOutput,
				SrcAccessMask: 0,

				DstStageMask:  core1_0.PipelineStageColorAttachmentOutput,
				DstAccessMask: core1_0.AccessColorAttachmentWrite,
			},
		},
	})
	if err != nil {
		return errors.Wrap(err, "creating render pass")
	}

	s.ctx.renderPass = renderPass
	s.ctx.teardown.push("render pass", func() {
		s.ctx.device.DestroyRenderPass(s.ctx.renderPass, nil)
	})

	return nil
}

func (s *setup) createPipeline() error {
	vertShader, err := s.createShaderModule("shaders/vert.spv")
	if err != nil {
		return err
	}
	defer s.ctx.device.DestroyShaderModule(vertShader, nil)

	fragShader, err := s.createShaderModule("shaders/frag.spv")
	if err != nil {
		return err
	}
	defer s.ctx.device.DestroyShaderModule(fragShader, nil)

	// The triangle is defined entirely in the vertex shader, so the
	// pipeline consumes no vertex input and the layout carries no
	// descriptor sets or push constants.
	s.ctx.pipelineLayout, _, err = s.ctx.device.CreatePipelineLayout(nil, core1_0.PipelineLayoutCreateInfo{})
	if err != nil {
		return errors.Wrap(err, "creating pipeline layout")
	}
	s.ctx.teardown.push("pipeline layout", func() {
		s.ctx.device.DestroyPipelineLayout(s.ctx.pipelineLayout, nil)
	})

	pipelines, _, err := s.ctx.device.CreateGraphicsPipelines(nil, nil,
		core1_0.GraphicsPipelineCreateInfo{
			Stages: []core1_0.PipelineShaderStageCreateInfo{
				{
					Stage:  core1_0.StageVertex,
					Module: vertShader,
					Name:   "main",
				},
				{
					Stage:  core1_0.StageFragment,
					Module: fragShader,
					Name:   "main",
				},
			},
			VertexInputState: &core1_0.PipelineVertexInputStateCreateInfo{},
			InputAssemblyState: &core1_0.PipelineInputAssemblyStateCreateInfo{
				Topology:               core1_0.PrimitiveTopologyTriangleList,
				PrimitiveRestartEnable: false,
			},
			ViewportState: &core1_0.PipelineViewportStateCreateInfo{
				Viewports: []core1_0.Viewport{
					{
						X:        0,
						Y:        0,
						Width:    float32(s.ctx.swapchainExtent.Width),
						Height:   float32(s.ctx.swapchainExtent.Height),
						MinDepth: 0,
						MaxDepth: 1,
					},
				},
				Scissors: []core1_0.Rect2D{
					{
						Offset: core1_0.Offset2D{X: 0, Y: 0},
						Extent: s.ctx.swapchainExtent,
					},
				},
			},
			RasterizationState: &core1_0.PipelineRasterizationStateCreateInfo{
				DepthClampEnable:        false,
				RasterizerDiscardEnable: false,

				PolygonMode: core1_0.PolygonModeFill,
				CullMode:    core1_0.CullModeBack,
				FrontFace:   core1_0.FrontFaceClockwise,

				DepthBiasEnable: false,

				LineWidth: 1.0,
			},
			MultisampleState: &core1_0.PipelineMultisampleStateCreateInfo{
				SampleShadingEnable:  false,
				RasterizationSamples: core1_0.Samples1,
				MinSampleShading:     1.0,
			},
			ColorBlendState: &core1_0.PipelineColorBlendStateCreateInfo{
				LogicOpEnabled: false,
				LogicOp:        core1_0.LogicOpCopy,

				BlendConstants: [4]float32{0, 0, 0, 0},
				Attachments: []core1_0.PipelineColorBlendAttachmentState{
					{
						BlendEnabled:   false,
						ColorWriteMask: core1_0.ColorComponentRed | core1_0.ColorComponentGreen | core1_0.ColorComponentBlue | core1_0.ColorComponentAlpha,
					},
				},
			},
			Layout:            s.ctx.pipelineLayout,
			RenderPass:        s.ctx.renderPass,
			Subpass:           0,
			BasePipelineIndex: -1,
		},
	)
	if err != nil {
		return errors.Wrap(err, "creating graphics pipeline")
	}

	s.ctx.pipeline = pipelines[0]
	s.ctx.teardown.push("pipeline", func() {
		s.ctx.device.DestroyPipeline(s.ctx.pipeline, nil)
	})

	return nil
}
