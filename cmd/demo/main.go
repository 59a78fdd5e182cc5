// Command demo opens a window, brings up the Vulkan device/swapchain
// core, and drives a minimal UI tree through it -- the thinnest host
// that exercises every layer end to end, the way vulkan-go-asche's own
// demo (application.go + platform.go) wires its Application up to a
// window toolkit.
package main

import (
	"log"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"

	"github.com/baopinshui/NPGS-sub000/internal/context"
	"github.com/baopinshui/NPGS-sub000/internal/gfxcore"
	"github.com/baopinshui/NPGS-sub000/internal/gfxmath"
	"github.com/baopinshui/NPGS-sub000/internal/transfer"
	"github.com/baopinshui/NPGS-sub000/internal/ui"
)

const (
	windowWidth  = 1280
	windowHeight = 720
)

func init() {
	// Vulkan/GLFW state is bound to the thread that created it.
	runtime.LockOSThread()
}

func main() {
	if err := glfw.Init(); err != nil {
		log.Fatalf("glfw init: %v", err)
	}
	defer glfw.Terminate()

	vk.SetGetInstanceProcAddr(glfw.GetVulkanGetInstanceProcAddress())
	if err := vk.Init(); err != nil {
		log.Fatalf("vulkan init: %v", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(windowWidth, windowHeight, "galaxy-engine demo", nil, nil)
	if err != nil {
		log.Fatalf("create window: %v", err)
	}
	defer window.Destroy()

	cfg := gfxcore.DefaultInstanceConfig()
	cfg.RequestedExtensions = window.GetRequiredInstanceExtensions()
	instance, res := gfxcore.CreateInstance(cfg)
	if res != gfxcore.Success {
		log.Fatalf("create instance: %v", res)
	}
	defer instance.Destroy()

	rawSurface, err := window.CreateWindowSurface(instance.Handle(), nil)
	if err != nil {
		log.Fatalf("create surface: %v", err)
	}
	surface := vk.SurfaceFromPointer(rawSurface)
	defer vk.DestroySurface(instance.Handle(), surface, nil)

	gpus, res := gfxcore.EnumeratePhysicalDevices(instance)
	if res != gfxcore.Success || len(gpus) == 0 {
		log.Fatalf("enumerate physical devices: %v", res)
	}
	gpu := gpus[0]

	families, res := gpu.SelectQueueFamilies(surface, gfxcore.DemandGraphicsPresentCompute)
	if res != gfxcore.Success {
		log.Fatalf("select queue families: %v", res)
	}

	device, res := gfxcore.CreateDevice(gpu, families, []string{"VK_KHR_swapchain\x00"})
	if res != gfxcore.Success {
		log.Fatalf("create device: %v", res)
	}
	defer device.Destroy()

	swapCfg := gfxcore.SwapchainConfig{Width: windowWidth, Height: windowHeight, Vsync: true}
	swapchain, res := gfxcore.CreateSwapchain(device, surface, swapCfg)
	if res != gfxcore.Success {
		log.Fatalf("create swapchain: %v", res)
	}
	defer swapchain.Destroy()

	ctx, res := context.Create(device)
	if res != gfxcore.Success {
		log.Fatalf("create context: %v", res)
	}
	defer ctx.Destroy()
	ctx.FireCreateSwapchain()
	defer ctx.FireDestroySwapchain()
	swapchain.SetCallbacks(ctx)

	atomSize := gpu.Properties().Limits.NonCoherentAtomSize
	stagingPool := transfer.NewStagingBufferPool(device.Handle(), gpu.MemoryProperties(), atomSize)
	defer stagingPool.Destroy()

	extent := swapchain.Extent()
	camera := gfxmath.Camera{
		FovYRadians: gfxmath.DegreesToRadians(60),
		Aspect:      float32(extent.Width) / float32(extent.Height),
		Near:        0.1,
		Far:         10000.0,
	}
	_ = camera.ProjectionMatrix()

	root := buildDemoUI()
	router := ui.NewInputRouter(root)
	wireInput(window, router)

	log.Printf("demo: %d swapchain images, separate present queue: %v",
		swapchain.ImageCount(), device.HasSeparatePresentQueue())

	layoutRoot(root, window)

	last := time.Now()
	for !window.ShouldClose() {
		glfw.PollEvents()

		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		root.Update(dt)
		// Re-measure/arrange every frame: cheap relative to a frame budget,
		// and picks up a resized framebuffer without a separate callback.
		layoutRoot(root, window)
	}
}

// layoutRoot runs the measure/arrange pass root needs before Draw reads
// any AbsoluteRect; Measure must populate every container's cached
// child sizes before Arrange distributes space, so the two always run
// as a pair.
func layoutRoot(root *ui.VBox, window *glfw.Window) {
	w, h := window.GetFramebufferSize()
	available := ui.Size{W: float32(w), H: float32(h)}
	root.Measure(available)
	root.Arrange(ui.Rect{X: 0, Y: 0, W: available.W, H: available.H})
}

// buildDemoUI assembles a small tree exercising the layout containers,
// a scrolling log panel, and a couple of interactive widgets -- enough
// to drive every code path in internal/ui without a real renderer.
func buildDemoUI() *ui.VBox {
	root := ui.NewVBox()
	root.Padding = 8
	root.SetWidthPolicy(ui.Stretch(1))
	root.SetHeightPolicy(ui.Stretch(1))

	logs := ui.NewLogPanel(4)
	logs.SetWidthPolicy(ui.Stretch(1))
	logs.SetHeightPolicy(ui.Content())
	logs.SetSystemStatus("system.status.nominal")
	logs.AddLog(ui.LogInfo, "probe", "launch sequence nominal")

	controls := ui.NewHBox()
	controls.Padding = 12
	controls.SetWidthPolicy(ui.Stretch(1))
	controls.SetHeightPolicy(ui.Fixed(48))

	pause := ui.NewButton("pause", func() {
		log.Println("demo: pause pressed")
	})
	pause.SetWidthPolicy(ui.Stretch(1))

	speed := ui.NewSlider(0.5, func(v float32) {
		log.Printf("demo: time scale -> %.2f", v)
	})
	speed.SetWidthPolicy(ui.Stretch(2))

	controls.AddChild(pause)
	controls.AddChild(speed)

	root.AddChild(logs)
	root.AddChild(controls)
	return root
}

// wireInput bridges GLFW's callback-based input to InputRouter's
// poll-friendly MouseEvent/KeyEvent shapes.
func wireInput(window *glfw.Window, router *ui.InputRouter) {
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		x, y := w.GetCursorPos()
		ev := ui.MouseEvent{X: float32(x), Y: float32(y)}
		switch action {
		case glfw.Press:
			ev.Pressed = true
		case glfw.Release:
			ev.Released = true
		}
		router.DispatchMouse(ev)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		router.DispatchMouse(ui.MouseEvent{X: float32(x), Y: float32(y)})
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press && action != glfw.Repeat {
			return
		}
		router.DispatchKey(ui.KeyEvent{Key: keyName(key), Pressed: true})
	})
}

func keyName(key glfw.Key) string {
	switch key {
	case glfw.KeyBackspace:
		return "Backspace"
	case glfw.KeyEnter:
		return "Enter"
	case glfw.KeyLeft:
		return "Left"
	case glfw.KeyRight:
		return "Right"
	default:
		name := glfw.GetKeyName(key, 0)
		if name == "" {
			return ""
		}
		return name
	}
}
