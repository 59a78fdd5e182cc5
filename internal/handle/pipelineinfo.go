package handle

import vk "github.com/vulkan-go/vulkan"

// GraphicsPipelineInfo aggregates the fixed-function state blocks a
// graphics pipeline is built from. Unlike a one-shot vk.GraphicsPipelineCreateInfo
// literal, it keeps its own slice fields so a caller can mutate shader
// stages, viewports, or blend attachments and call Update to re-wire the
// pointer fields before the next CreateGraphicsPipelines call -- Go's
// garbage collector can relocate slice backing arrays between calls, so
// the raw vk.GraphicsPipelineCreateInfo must be rebuilt each time rather
// than cached.
//
// Grounded on vulkan-go-asche/pipeline.go's PipelineBuilder, generalized
// from its single hardcoded triangle pipeline into a reusable aggregate.
type GraphicsPipelineInfo struct {
	ShaderStages   []vk.PipelineShaderStageCreateInfo
	VertexInput    vk.PipelineVertexInputStateCreateInfo
	InputAssembly  vk.PipelineInputAssemblyStateCreateInfo
	Viewports      []vk.Viewport
	Scissors       []vk.Rect2D
	Rasterization  vk.PipelineRasterizationStateCreateInfo
	Multisample    vk.PipelineMultisampleStateCreateInfo
	DepthStencil   vk.PipelineDepthStencilStateCreateInfo
	ColorBlends    []vk.PipelineColorBlendAttachmentState
	DynamicStates  []vk.DynamicState
	Layout         vk.PipelineLayout
	RenderPass     vk.RenderPass
	Subpass        uint32

	viewportState   vk.PipelineViewportStateCreateInfo
	colorBlendState vk.PipelineColorBlendStateCreateInfo
	dynamicState    vk.PipelineDynamicStateCreateInfo
	raw             vk.GraphicsPipelineCreateInfo
}

// DefaultGraphicsPipelineInfo returns the fixed-function defaults the
// triangle-rendering path used: no vertex input, triangle-list topology,
// back-face culling, single-sample, no blending, clockwise front
// face, line width 1.
func DefaultGraphicsPipelineInfo() *GraphicsPipelineInfo {
	return &GraphicsPipelineInfo{
		VertexInput: vk.PipelineVertexInputStateCreateInfo{
			SType: vk.StructureTypePipelineVertexInputStateCreateInfo,
		},
		InputAssembly: vk.PipelineInputAssemblyStateCreateInfo{
			SType:    vk.StructureTypePipelineInputAssemblyStateCreateInfo,
			Topology: vk.PrimitiveTopologyTriangleList,
		},
		Rasterization: vk.PipelineRasterizationStateCreateInfo{
			SType:       vk.StructureTypePipelineRasterizationStateCreateInfo,
			PolygonMode: vk.PolygonModeFill,
			CullMode:    vk.CullModeFlags(vk.CullModeBackBit),
			FrontFace:   vk.FrontFaceClockwise,
			LineWidth:   1.0,
		},
		Multisample: vk.PipelineMultisampleStateCreateInfo{
			SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
			RasterizationSamples: vk.SampleCount1Bit,
			MinSampleShading:     1.0,
		},
		DepthStencil: vk.PipelineDepthStencilStateCreateInfo{
			SType: vk.StructureTypePipelineDepthStencilStateCreateInfo,
		},
		ColorBlends: []vk.PipelineColorBlendAttachmentState{{
			ColorWriteMask: vk.ColorComponentFlags(vk.ColorComponentRBit) |
				vk.ColorComponentFlags(vk.ColorComponentGBit) |
				vk.ColorComponentFlags(vk.ColorComponentBBit) |
				vk.ColorComponentFlags(vk.ColorComponentABit),
			BlendEnable: vk.False,
		}},
	}
}

// Update rebuilds the internal pointer-bearing structures from the
// current slice fields. Must be called after mutating ShaderStages,
// Viewports, Scissors, ColorBlends, or DynamicStates and before the
// pipeline is (re)built.
func (g *GraphicsPipelineInfo) Update() {
	g.viewportState = vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: uint32(len(g.Viewports)),
		PViewports:    g.Viewports,
		ScissorCount:  uint32(len(g.Scissors)),
		PScissors:     g.Scissors,
	}
	g.colorBlendState = vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		LogicOp:         vk.LogicOpCopy,
		AttachmentCount: uint32(len(g.ColorBlends)),
		PAttachments:    g.ColorBlends,
	}
	var dynamicStatePtr *vk.PipelineDynamicStateCreateInfo
	if len(g.DynamicStates) > 0 {
		g.dynamicState = vk.PipelineDynamicStateCreateInfo{
			SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
			DynamicStateCount: uint32(len(g.DynamicStates)),
			PDynamicStates:    g.DynamicStates,
		}
		dynamicStatePtr = &g.dynamicState
	}

	g.raw = vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(g.ShaderStages)),
		PStages:             g.ShaderStages,
		PVertexInputState:   &g.VertexInput,
		PInputAssemblyState: &g.InputAssembly,
		PViewportState:      &g.viewportState,
		PRasterizationState: &g.Rasterization,
		PMultisampleState:   &g.Multisample,
		PDepthStencilState:  &g.DepthStencil,
		PColorBlendState:    &g.colorBlendState,
		PDynamicState:       dynamicStatePtr,
		Layout:              g.Layout,
		RenderPass:          g.RenderPass,
		Subpass:             g.Subpass,
	}
}

// ComputePipelineInfo aggregates the single shader stage and layout a
// compute pipeline needs.
type ComputePipelineInfo struct {
	Stage  vk.PipelineShaderStageCreateInfo
	Layout vk.PipelineLayout

	raw vk.ComputePipelineCreateInfo
}

func (c *ComputePipelineInfo) Update() {
	c.raw = vk.ComputePipelineCreateInfo{
		SType:  vk.StructureTypeComputePipelineCreateInfo,
		Stage:  c.Stage,
		Layout: c.Layout,
	}
}
