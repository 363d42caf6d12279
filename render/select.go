package render

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
)

// QueueFamilyIndices holds the resolved queue family for each required
// capability. Graphics and present may resolve to the same family.
type QueueFamilyIndices struct {
	GraphicsFamily *int
	PresentFamily  *int
}

func (i QueueFamilyIndices) IsComplete() bool {
	return i.GraphicsFamily != nil && i.PresentFamily != nil
}

// findQueueFamilies records the first family index whose flags include
// graphics and the first family index with present support against the
// bound surface, scanning in index order.
func findQueueFamilies(facts DeviceFacts) QueueFamilyIndices {
	var indices QueueFamilyIndices

	for familyIndex, family := range facts.QueueFamilies {
		if indices.GraphicsFamily == nil && (family.QueueFlags&core1_0.QueueGraphics) != 0 {
			index := familyIndex
			indices.GraphicsFamily = &index
		}

		if indices.PresentFamily == nil && familyIndex < len(facts.PresentSupport) && facts.PresentSupport[familyIndex] {
			index := familyIndex
			indices.PresentFamily = &index
		}

		if indices.IsComplete() {
			break
		}
	}

	return indices
}

func supportsExtensions(facts DeviceFacts, required []string) bool {
	for _, name := range required {
		if _, ok := facts.Extensions[name]; !ok {
			return false
		}
	}
	return true
}

func swapchainAdequate(facts DeviceFacts) bool {
	return len(facts.Swapchain.Formats) > 0 && len(facts.Swapchain.PresentModes) > 0
}

func deviceSuitable(facts DeviceFacts, requiredExtensions []string) bool {
	return findQueueFamilies(facts).IsComplete() &&
		supportsExtensions(facts, requiredExtensions) &&
		swapchainAdequate(facts)
}

// selectPhysicalDevice picks the first device in enumeration order for
// which all three suitability predicates hold. First fit, not best fit:
// the same facts always yield the same choice.
func selectPhysicalDevice(facts []DeviceFacts, requiredExtensions []string) (int, QueueFamilyIndices, error) {
	for i, candidate := range facts {
		if deviceSuitable(candidate, requiredExtensions) {
			return i, findQueueFamilies(candidate), nil
		}
	}

	return -1, QueueFamilyIndices{}, errors.New("no suitable device with Vulkan support found")
}
