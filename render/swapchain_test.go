package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
)

func TestChooseSurfaceFormatPrefersBGRASRGB(t *testing.T) {
	preferred := khr_surface.SurfaceFormat{Format: core1_0.FormatB8G8R8A8SRGB, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear}
	available := []khr_surface.SurfaceFormat{
		{Format: core1_0.FormatR8G8B8A8SRGB, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear},
		preferred,
	}

	assert.Equal(t, preferred, chooseSurfaceFormat(available))
}

func TestChooseSurfaceFormatFallsBackToFirst(t *testing.T) {
	available := []khr_surface.SurfaceFormat{
		{Format: core1_0.FormatR8G8B8A8SRGB, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear},
		{Format: core1_0.FormatR8G8B8A8UnsignedNormalized, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear},
	}

	assert.Equal(t, available[0], chooseSurfaceFormat(available))
}

func TestChoosePresentModePrefersMailbox(t *testing.T) {
	available := []khr_surface.PresentMode{
		khr_surface.PresentModeFIFO,
		khr_surface.PresentModeMailbox,
	}

	assert.Equal(t, khr_surface.PresentModeMailbox, choosePresentMode(available))
}

func TestChoosePresentModeFallsBackToFIFO(t *testing.T) {
	available := []khr_surface.PresentMode{khr_surface.PresentModeImmediate}

	assert.Equal(t, khr_surface.PresentModeFIFO, choosePresentMode(available))
}

func TestChooseExtentUsesSurfaceExtentVerbatim(t *testing.T) {
	capabilities := &khr_surface.SurfaceCapabilities{
		CurrentExtent:  core1_0.Extent2D{Width: 640, Height: 480},
		MinImageExtent: core1_0.Extent2D{Width: 1, Height: 1},
		MaxImageExtent: core1_0.Extent2D{Width: 4096, Height: 4096},
	}

	extent := chooseExtent(capabilities, core1_0.Extent2D{Width: 1024, Height: 768})

	assert.Equal(t, core1_0.Extent2D{Width: 640, Height: 480}, extent)
}

func TestChooseExtentClampsRequestedWhenUndefined(t *testing.T) {
	capabilities := &khr_surface.SurfaceCapabilities{
		CurrentExtent:  core1_0.Extent2D{Width: -1, Height: -1},
		MinImageExtent: core1_0.Extent2D{Width: 64, Height: 32},
		MaxImageExtent: core1_0.Extent2D{Width: 4096, Height: 2048},
	}

	// Width clamps against the width bounds, height against the height
	// bounds, independently.
	assert.Equal(t, core1_0.Extent2D{Width: 800, Height: 600},
		chooseExtent(capabilities, core1_0.Extent2D{Width: 800, Height: 600}))
	assert.Equal(t, core1_0.Extent2D{Width: 4096, Height: 600},
		chooseExtent(capabilities, core1_0.Extent2D{Width: 8000, Height: 600}))
	assert.Equal(t, core1_0.Extent2D{Width: 800, Height: 2048},
		chooseExtent(capabilities, core1_0.Extent2D{Width: 800, Height: 5000}))
	assert.Equal(t, core1_0.Extent2D{Width: 64, Height: 32},
		chooseExtent(capabilities, core1_0.Extent2D{Width: 1, Height: 1}))
}

func TestChooseImageCount(t *testing.T) {
	// One past the minimum when the maximum allows it.
	assert.Equal(t, 3, chooseImageCount(&khr_surface.SurfaceCapabilities{MinImageCount: 2, MaxImageCount: 8}))
	// Capped at the maximum.
	assert.Equal(t, 3, chooseImageCount(&khr_surface.SurfaceCapabilities{MinImageCount: 3, MaxImageCount: 3}))
	// Zero maximum means unbounded.
	assert.Equal(t, 2, chooseImageCount(&khr_surface.SurfaceCapabilities{MinImageCount: 1, MaxImageCount: 0}))
}

func TestChooseSharingModeExclusive(t *testing.T) {
	family := 0
	mode, families := chooseSharingMode(QueueFamilyIndices{GraphicsFamily: &family, PresentFamily: &family})

	assert.Equal(t, core1_0.SharingModeExclusive, mode)
	assert.Empty(t, families)
}

func TestChooseSharingModeConcurrent(t *testing.T) {
	graphics, present := 0, 1
	mode, families := chooseSharingMode(QueueFamilyIndices{GraphicsFamily: &graphics, PresentFamily: &present})

	assert.Equal(t, core1_0.SharingModeConcurrent, mode)
	assert.Equal(t, []int{0, 1}, families)
}

// TestNegotiationSingleCombinedFamily runs the full pure negotiation over a
// mock device with one combined graphics/present family, one format, FIFO
// only, and an undefined current extent.
func TestNegotiationSingleCombinedFamily(t *testing.T) {
	facts := capableDevice("single gpu")
	facts.Swapchain = SwapchainSupportDetails{
		Capabilities: &khr_surface.SurfaceCapabilities{
			MinImageCount:  1,
			MaxImageCount:  0,
			CurrentExtent:  core1_0.Extent2D{Width: -1, Height: -1},
			MinImageExtent: core1_0.Extent2D{Width: 1, Height: 1},
			MaxImageExtent: core1_0.Extent2D{Width: 4096, Height: 4096},
		},
		Formats: []khr_surface.SurfaceFormat{
			{Format: core1_0.FormatR8G8B8A8UnsignedNormalized, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear},
		},
		PresentModes: []khr_surface.PresentMode{khr_surface.PresentModeFIFO},
	}

	chosen, indices, err := selectPhysicalDevice([]DeviceFacts{facts}, testExtensions)
	assert.NoError(t, err)
	assert.Equal(t, 0, chosen)

	mode, families := chooseSharingMode(indices)
	assert.Equal(t, core1_0.SharingModeExclusive, mode)
	assert.Empty(t, families)

	assert.Equal(t, facts.Swapchain.Formats[0], chooseSurfaceFormat(facts.Swapchain.Formats))
	assert.Equal(t, khr_surface.PresentModeFIFO, choosePresentMode(facts.Swapchain.PresentModes))
	assert.Equal(t, core1_0.Extent2D{Width: 800, Height: 600},
		chooseExtent(facts.Swapchain.Capabilities, core1_0.Extent2D{Width: 800, Height: 600}))
	assert.Equal(t, 2, chooseImageCount(facts.Swapchain.Capabilities))
}

// TestNegotiationSplitFamilies covers the two-family layout: family 0 is
// graphics-only, family 1 is present-only, so the swapchain must share
// images concurrently across [0, 1].
func TestNegotiationSplitFamilies(t *testing.T) {
	facts := capableDevice("split gpu")
	facts.QueueFamilies = []core1_0.QueueFamilyProperties{
		{QueueFlags: core1_0.QueueGraphics, QueueCount: 1},
		{QueueFlags: core1_0.QueueTransfer, QueueCount: 1},
	}
	facts.PresentSupport = []bool{false, true}

	chosen, indices, err := selectPhysicalDevice([]DeviceFacts{facts}, testExtensions)
	assert.NoError(t, err)
	assert.Equal(t, 0, chosen)

	mode, families := chooseSharingMode(indices)
	assert.Equal(t, core1_0.SharingModeConcurrent, mode)
	assert.Equal(t, []int{0, 1}, families)
}
