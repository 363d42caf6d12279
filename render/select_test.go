package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

var testExtensions = []string{khr_swapchain.ExtensionName}

func adequateSwapchain() SwapchainSupportDetails {
	return SwapchainSupportDetails{
		Capabilities: &khr_surface.SurfaceCapabilities{
			MinImageCount: 2,
			MaxImageCount: 8,
		},
		Formats: []khr_surface.SurfaceFormat{
			{Format: core1_0.FormatB8G8R8A8SRGB, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear},
		},
		PresentModes: []khr_surface.PresentMode{khr_surface.PresentModeFIFO},
	}
}

// capableDevice advertises one queue family with both graphics and present
// support, the swapchain extension, and an adequate swapchain.
func capableDevice(name string) DeviceFacts {
	return DeviceFacts{
		Name: name,
		QueueFamilies: []core1_0.QueueFamilyProperties{
			{QueueFlags: core1_0.QueueGraphics, QueueCount: 1},
		},
		PresentSupport: []bool{true},
		Extensions:     map[string]struct{}{khr_swapchain.ExtensionName: {}},
		Swapchain:      adequateSwapchain(),
	}
}

func TestFindQueueFamiliesCombined(t *testing.T) {
	indices := findQueueFamilies(capableDevice("gpu"))

	assert.True(t, indices.IsComplete())
	assert.Equal(t, 0, *indices.GraphicsFamily)
	assert.Equal(t, 0, *indices.PresentFamily)
}

func TestFindQueueFamiliesSplit(t *testing.T) {
	facts := capableDevice("gpu")
	facts.QueueFamilies = []core1_0.QueueFamilyProperties{
		{QueueFlags: core1_0.QueueGraphics, QueueCount: 1},
		{QueueFlags: core1_0.QueueTransfer, QueueCount: 1},
	}
	facts.PresentSupport = []bool{false, true}

	indices := findQueueFamilies(facts)

	assert.True(t, indices.IsComplete())
	assert.Equal(t, 0, *indices.GraphicsFamily)
	assert.Equal(t, 1, *indices.PresentFamily)
}

func TestFindQueueFamiliesRecordsFirstMatch(t *testing.T) {
	facts := capableDevice("gpu")
	facts.QueueFamilies = []core1_0.QueueFamilyProperties{
		{QueueFlags: core1_0.QueueGraphics, QueueCount: 1},
		{QueueFlags: core1_0.QueueGraphics, QueueCount: 4},
	}
	facts.PresentSupport = []bool{true, true}

	indices := findQueueFamilies(facts)

	assert.Equal(t, 0, *indices.GraphicsFamily)
	assert.Equal(t, 0, *indices.PresentFamily)
}

func TestFindQueueFamiliesIncomplete(t *testing.T) {
	facts := capableDevice("gpu")
	facts.PresentSupport = []bool{false}

	assert.False(t, findQueueFamilies(facts).IsComplete())
}

func TestSelectPhysicalDeviceFirstFit(t *testing.T) {
	facts := []DeviceFacts{capableDevice("first"), capableDevice("second")}

	for i := 0; i < 3; i++ {
		chosen, indices, err := selectPhysicalDevice(facts, testExtensions)

		assert.NoError(t, err)
		assert.Equal(t, 0, chosen)
		assert.True(t, indices.IsComplete())
	}
}

func TestSelectPhysicalDeviceSkipsMissingExtensions(t *testing.T) {
	bare := capableDevice("no swapchain ext")
	bare.Extensions = map[string]struct{}{}

	chosen, _, err := selectPhysicalDevice([]DeviceFacts{bare, capableDevice("full")}, testExtensions)

	assert.NoError(t, err)
	assert.Equal(t, 1, chosen)
}

func TestSelectPhysicalDeviceSkipsInadequateSwapchain(t *testing.T) {
	noFormats := capableDevice("no formats")
	noFormats.Swapchain.Formats = nil

	noModes := capableDevice("no modes")
	noModes.Swapchain.PresentModes = nil

	chosen, _, err := selectPhysicalDevice([]DeviceFacts{noFormats, noModes, capableDevice("full")}, testExtensions)

	assert.NoError(t, err)
	assert.Equal(t, 2, chosen)
}

func TestSelectPhysicalDeviceExtensionsTrumpQueueCompleteness(t *testing.T) {
	// A device missing required extensions is never selected, no matter how
	// complete its queue families are.
	complete := capableDevice("complete but bare")
	complete.Extensions = map[string]struct{}{}

	chosen, _, err := selectPhysicalDevice([]DeviceFacts{complete}, testExtensions)

	assert.Error(t, err)
	assert.Equal(t, -1, chosen)
}

func TestSelectPhysicalDeviceNoneSuitable(t *testing.T) {
	incomplete := capableDevice("no present")
	incomplete.PresentSupport = []bool{false}

	_, _, err := selectPhysicalDevice([]DeviceFacts{incomplete}, testExtensions)

	assert.ErrorContains(t, err, "no suitable device")
}

func TestSelectPhysicalDeviceEmptyEnumeration(t *testing.T) {
	_, _, err := selectPhysicalDevice(nil, testExtensions)

	assert.Error(t, err)
}
