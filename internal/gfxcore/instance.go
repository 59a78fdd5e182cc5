package gfxcore

import (
	"github.com/baopinshui/NPGS-sub000/internal/gfxlog"

	vk "github.com/vulkan-go/vulkan"
)

// Version mirrors Vulkan's packed API/application version triple.
// Grounded on christerso-vulkan-go/pkg/vk/instance.go's Version type.
type Version struct {
	Major, Minor, Patch uint32
}

func (v Version) Pack() uint32 { return vk.MakeVersion(v.Major, v.Minor, v.Patch) }

// InstanceConfig configures Instance creation. Layer/extension lists are
// the caller's *requested* names; negotiation silently drops anything
// unsupported rather than failing instance creation.
type InstanceConfig struct {
	ApplicationName    string
	ApplicationVersion Version
	EngineName         string
	EngineVersion      Version
	APIVersion         Version
	RequestedLayers     []string
	RequestedExtensions []string
}

func DefaultInstanceConfig() InstanceConfig {
	return InstanceConfig{
		ApplicationName:    "galaxy-engine",
		ApplicationVersion: Version{1, 0, 0},
		EngineName:         "NPGS-sub000",
		EngineVersion:      Version{1, 0, 0},
		APIVersion:         Version{1, 4, 0},
	}
}

// Instance owns the process-wide Vulkan entry point. Callers are expected
// to create exactly one for the process lifetime.
type Instance struct {
	handle    vk.Instance
	layers    []string
	extensions []string
	apiVersion Version
}

func (i *Instance) Handle() vk.Instance   { return i.handle }
func (i *Instance) Layers() []string      { return i.layers }
func (i *Instance) Extensions() []string  { return i.extensions }
func (i *Instance) APIVersion() Version   { return i.apiVersion }

// CreateInstance negotiates layers/extensions and creates the Vulkan
// instance. Grounded on vulkan-go-asche/platform.go's NewPlatform prologue.
func CreateInstance(cfg InstanceConfig) (*Instance, Result) {
	availableLayers, res := enumerateInstanceLayers()
	if res != Success {
		return nil, res
	}
	layers := negotiate(cfg.RequestedLayers, availableLayers)

	availableExtensions, res := enumerateInstanceExtensions()
	if res != Success {
		return nil, res
	}
	extensions := negotiate(cfg.RequestedExtensions, availableExtensions)

	appName := cfg.ApplicationName + "\x00"
	engineName := cfg.EngineName + "\x00"

	var handle vk.Instance
	ret := vk.CreateInstance(&vk.InstanceCreateInfo{
		SType: vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &vk.ApplicationInfo{
			SType:              vk.StructureTypeApplicationInfo,
			PApplicationName:   appName,
			ApplicationVersion: cfg.ApplicationVersion.Pack(),
			PEngineName:        engineName,
			EngineVersion:      cfg.EngineVersion.Pack(),
			ApiVersion:         cfg.APIVersion.Pack(),
		},
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     nullTerminated(layers),
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: nullTerminated(extensions),
	}, nil, &handle)
	if IsError(ret) {
		gfxlog.Errorf("vkCreateInstance failed: %v", ret)
		return nil, FromVkResult(ret)
	}
	vk.InitInstance(handle)

	return &Instance{
		handle:     handle,
		layers:     layers,
		extensions: extensions,
		apiVersion: cfg.APIVersion,
	}, Success
}

// Destroy tears down the instance. The first step of a reversible
// teardown sequence; safe to call on a zero-value Instance.
func (i *Instance) Destroy() {
	if i.handle == nil {
		return
	}
	vk.DestroyInstance(i.handle, nil)
	i.handle = nil
}

func enumerateInstanceLayers() ([]string, Result) {
	var count uint32
	ret := vk.EnumerateInstanceLayerProperties(&count, nil)
	if IsError(ret) {
		return nil, FromVkResult(ret)
	}
	list := make([]vk.LayerProperties, count)
	ret = vk.EnumerateInstanceLayerProperties(&count, list)
	if IsError(ret) {
		return nil, FromVkResult(ret)
	}
	names := make([]string, 0, count)
	for i := range list {
		list[i].Deref()
		names = append(names, vk.ToString(list[i].LayerName[:]))
	}
	return names, Success
}

func enumerateInstanceExtensions() ([]string, Result) {
	var count uint32
	ret := vk.EnumerateInstanceExtensionProperties("", &count, nil)
	if IsError(ret) {
		return nil, FromVkResult(ret)
	}
	list := make([]vk.ExtensionProperties, count)
	ret = vk.EnumerateInstanceExtensionProperties("", &count, list)
	if IsError(ret) {
		return nil, FromVkResult(ret)
	}
	names := make([]string, 0, count)
	for i := range list {
		list[i].Deref()
		names = append(names, vk.ToString(list[i].ExtensionName[:]))
	}
	return names, Success
}

// negotiate drops any requested name absent from available, preserving
// requested order.
func negotiate(requested, available []string) []string {
	set := make(map[string]bool, len(available))
	for _, a := range available {
		set[a] = true
	}
	out := make([]string, 0, len(requested))
	dropped := 0
	for _, r := range requested {
		if set[r] {
			out = append(out, r)
		} else {
			dropped++
		}
	}
	if dropped > 0 {
		gfxlog.Warnf("dropped %d unsupported names during negotiation", dropped)
	}
	return out
}

func nullTerminated(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n + "\x00"
	}
	return out
}
