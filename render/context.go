package render

import (
	"log"

	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

// Context owns every Vulkan object created during bring-up. Handles are
// acquired in a fixed order and released by Destroy in exactly the reverse
// order: pipeline, pipeline layout, render pass, image views, swapchain,
// device, surface, debug messenger, instance.
type Context struct {
	instance         core1_0.CoreInstanceDriver
	debugDriver      ext_debug_utils.ExtensionDriver
	debugMessenger   ext_debug_utils.DebugUtilsMessenger
	surfaceExtension khr_surface.ExtensionDriver
	surface          khr_surface.Surface

	physicalDevice core1_0.PhysicalDevice
	queueIndices   QueueFamilyIndices

	device        core1_0.CoreDeviceDriver
	graphicsQueue core1_0.Queue
	presentQueue  core1_0.Queue

	swapchainExtension khr_swapchain.ExtensionDriver
	swapchain          khr_swapchain.Swapchain
	swapchainImages    []core1_0.Image
	swapchainFormat    core1_0.Format
	swapchainExtent    core1_0.Extent2D
	swapchainViews     []core1_0.ImageView

	renderPass     core1_0.RenderPass
	pipelineLayout core1_0.PipelineLayout
	pipeline       core1_0.Pipeline

	teardown teardownStack
}

// New negotiates device capabilities against the given window and builds
// the full presentation chain: instance, surface, device, swapchain plus
// views, render pass and graphics pipeline. vertCode and fragCode are
// opaque SPIR-V buffers consumed during pipeline construction only. Any
// failure releases every handle acquired up to that point before the error
// is returned.
func New(globalDriver core1_0.GlobalDriver, window *sdl.Window, cfg Config, vertCode, fragCode []byte) (*Context, error) {
	ctx := &Context{}

	if err := ctx.build(globalDriver, window, cfg, vertCode, fragCode); err != nil {
		ctx.Destroy()
		return nil, err
	}

	return ctx, nil
}

func (c *Context) build(globalDriver core1_0.GlobalDriver, window *sdl.Window, cfg Config, vertCode, fragCode []byte) error {
	var err error

	c.instance, err = createInstance(globalDriver, window, cfg)
	if err != nil {
		return errors.Wrap(err, "creating instance")
	}
	c.teardown.push("instance", func() { c.instance.DestroyInstance(nil) })

	if cfg.EnableValidation {
		c.debugDriver, c.debugMessenger, err = createDebugMessenger(c.instance)
		if err != nil {
			return errors.Wrap(err, "creating debug messenger")
		}
		c.teardown.push("debug messenger", func() { c.debugDriver.DestroyDebugUtilsMessenger(c.debugMessenger, nil) })
	}

	c.surfaceExtension, c.surface, err = createSurface(c.instance, window)
	if err != nil {
		return errors.Wrap(err, "creating surface")
	}
	c.teardown.push("surface", func() { c.surfaceExtension.DestroySurface(c.surface, nil) })

	capabilities := &prober{
		instance:         c.instance,
		surfaceExtension: c.surfaceExtension,
		surface:          c.surface,
	}

	devices, _, err := c.instance.EnumeratePhysicalDevices()
	if err != nil {
		return errors.Wrap(err, "enumerating physical devices")
	}
	log.Printf("%d devices (GPU) found with Vulkan support", len(devices))

	var allFacts []DeviceFacts
	for _, device := range devices {
		facts, err := capabilities.deviceFacts(device)
		if err != nil {
			return errors.Wrap(err, "probing physical device")
		}
		logDeviceFacts(facts)
		allFacts = append(allFacts, facts)
	}

	chosen, indices, err := selectPhysicalDevice(allFacts, cfg.DeviceExtensions)
	if err != nil {
		return err
	}
	c.physicalDevice = devices[chosen]
	c.queueIndices = indices
	log.Printf("selected device %s", allFacts[chosen].Name)

	c.device, c.graphicsQueue, c.presentQueue, err = createLogicalDevice(c.instance, c.physicalDevice, indices, cfg)
	if err != nil {
		return errors.Wrap(err, "creating logical device")
	}
	c.teardown.push("device", func() { c.device.DestroyDevice(nil) })

	c.swapchainExtension = khr_swapchain.CreateExtensionDriverFromCoreDriver(c.device)

	support, err := capabilities.swapchainSupport(c.physicalDevice)
	if err != nil {
		return errors.Wrap(err, "querying swapchain support")
	}

	swapchain, surfaceFormat, extent, err := createSwapchain(c.swapchainExtension, c.surface, support, indices, drawableExtent(window, cfg))
	if err != nil {
		return errors.Wrap(err, "creating swapchain")
	}
	c.swapchain = swapchain
	c.swapchainFormat = surfaceFormat.Format
	c.swapchainExtent = extent
	c.teardown.push("swapchain", func() { c.swapchainExtension.DestroySwapchain(c.swapchain, nil) })

	c.swapchainImages, _, err = c.swapchainExtension.GetSwapchainImages(c.swapchain)
	if err != nil {
		return errors.Wrap(err, "retrieving swapchain images")
	}

	for _, image := range c.swapchainImages {
		view, err := createColorView(c.device, image, c.swapchainFormat)
		if err != nil {
			return errors.Wrap(err, "creating swapchain image view")
		}
		c.swapchainViews = append(c.swapchainViews, view)
		c.teardown.push("image view", func() { c.device.DestroyImageView(view, nil) })
	}

	c.renderPass, err = createRenderPass(c.device, c.swapchainFormat)
	if err != nil {
		return errors.Wrap(err, "creating render pass")
	}
	c.teardown.push("render pass", func() { c.device.DestroyRenderPass(c.renderPass, nil) })

	c.pipeline, c.pipelineLayout, err = createGraphicsPipeline(c.device, c.renderPass, c.swapchainExtent, vertCode, fragCode)
	if err != nil {
		return err
	}
	c.teardown.push("pipeline layout", func() { c.device.DestroyPipelineLayout(c.pipelineLayout, nil) })
	c.teardown.push("pipeline", func() { c.device.DestroyPipeline(c.pipeline, nil) })

	return nil
}

// drawableExtent is the requested swapchain extent: the window's current
// drawable size, or the configured fallback when the window cannot report
// one. It only applies when the surface leaves the extent undefined.
func drawableExtent(window *sdl.Window, cfg Config) core1_0.Extent2D {
	width, height := window.VulkanGetDrawableSize()
	if width <= 0 || height <= 0 {
		return cfg.FallbackExtent
	}

	return core1_0.Extent2D{Width: int(width), Height: int(height)}
}

// Destroy releases every owned handle in reverse acquisition order. It is
// safe on a partially constructed context; a second call is a no-op.
func (c *Context) Destroy() {
	c.teardown.unwind()
}

// Device returns the logical device driver. It stays valid until Destroy.
func (c *Context) Device() core1_0.CoreDeviceDriver { return c.device }

// GraphicsQueue and PresentQueue remain valid for the device's lifetime;
// all synchronization for their use belongs to the caller.
func (c *Context) GraphicsQueue() core1_0.Queue { return c.graphicsQueue }

func (c *Context) PresentQueue() core1_0.Queue { return c.presentQueue }

func (c *Context) Swapchain() khr_swapchain.Swapchain { return c.swapchain }

// SwapchainImages are borrowed from the swapchain and are never destroyed
// individually.
func (c *Context) SwapchainImages() []core1_0.Image { return c.swapchainImages }

func (c *Context) SwapchainViews() []core1_0.ImageView { return c.swapchainViews }

func (c *Context) SwapchainFormat() core1_0.Format { return c.swapchainFormat }

func (c *Context) SwapchainExtent() core1_0.Extent2D { return c.swapchainExtent }

func (c *Context) RenderPass() core1_0.RenderPass { return c.renderPass }

func (c *Context) Pipeline() core1_0.Pipeline { return c.pipeline }

func (c *Context) PipelineLayout() core1_0.PipelineLayout { return c.pipelineLayout }

// QueueIndices exposes the resolved families for callers that need the
// sharing-mode decision downstream.
func (c *Context) QueueIndices() QueueFamilyIndices { return c.queueIndices }
