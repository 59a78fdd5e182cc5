package handle

import (
	"github.com/baopinshui/NPGS-sub000/internal/gfxcore"

	vk "github.com/vulkan-go/vulkan"
)

// Pipeline wraps a built graphics or compute pipeline, sharing one
// constructor path (vkCreateGraphicsPipelines / vkCreateComputePipelines
// both take an optional cache and an array-of-one create info) and one
// teardown path.
//
// Grounded on vulkan-go-asche/pipeline.go's BuildPipeline, generalized
// past its single hardcoded call to also cover compute pipelines.
type Pipeline struct {
	device vk.Device
	handle Handle[vk.Pipeline]
}

func (p *Pipeline) Handle() vk.Pipeline { return p.handle.Value() }

// NewGraphicsPipeline realizes info (Update must already have been
// called) against an optional pipeline cache.
func NewGraphicsPipeline(device vk.Device, cache vk.PipelineCache, info *GraphicsPipelineInfo) (*Pipeline, gfxcore.Result) {
	pipelines := []vk.Pipeline{vk.NullPipeline}
	ret := vk.CreateGraphicsPipelines(device, cache, 1, []vk.GraphicsPipelineCreateInfo{info.raw}, nil, pipelines)
	if gfxcore.IsError(ret) {
		return nil, gfxcore.FromVkResult(ret)
	}
	return wrapPipeline(device, pipelines[0]), gfxcore.Success
}

// NewComputePipeline realizes info (Update must already have been called)
// against an optional pipeline cache.
func NewComputePipeline(device vk.Device, cache vk.PipelineCache, info *ComputePipelineInfo) (*Pipeline, gfxcore.Result) {
	pipelines := []vk.Pipeline{vk.NullPipeline}
	ret := vk.CreateComputePipelines(device, cache, 1, []vk.ComputePipelineCreateInfo{info.raw}, nil, pipelines)
	if gfxcore.IsError(ret) {
		return nil, gfxcore.FromVkResult(ret)
	}
	return wrapPipeline(device, pipelines[0]), gfxcore.Success
}

func wrapPipeline(device vk.Device, raw vk.Pipeline) *Pipeline {
	return &Pipeline{
		device: device,
		handle: Wrap(raw, ReleaseDestroy, func(p vk.Pipeline) {
			vk.DestroyPipeline(device, p, nil)
		}),
	}
}

// Destroy releases the pipeline.
func (p *Pipeline) Destroy() { p.handle.Release() }

// PipelineCache wraps a vk.PipelineCache used to speed up repeated builds
// of related pipeline variants.
type PipelineCache struct {
	device vk.Device
	handle Handle[vk.PipelineCache]
}

func NewPipelineCache(device vk.Device) (*PipelineCache, gfxcore.Result) {
	var raw vk.PipelineCache
	ret := vk.CreatePipelineCache(device, &vk.PipelineCacheCreateInfo{
		SType: vk.StructureTypePipelineCacheCreateInfo,
	}, nil, &raw)
	if gfxcore.IsError(ret) {
		return nil, gfxcore.FromVkResult(ret)
	}
	return &PipelineCache{
		device: device,
		handle: Wrap(raw, ReleaseDestroy, func(c vk.PipelineCache) {
			vk.DestroyPipelineCache(device, c, nil)
		}),
	}, gfxcore.Success
}

func (c *PipelineCache) Handle() vk.PipelineCache { return c.handle.Value() }
func (c *PipelineCache) Destroy()                 { c.handle.Release() }
