package render

import (
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_portability_subset"
)

// createLogicalDevice opens the selected physical device with one queue of
// priority 1.0 per distinct required family. Graphics and present collapse
// into a single request when they resolved to the same family. No optional
// device features are enabled.
func createLogicalDevice(instance core1_0.CoreInstanceDriver, physicalDevice core1_0.PhysicalDevice, indices QueueFamilyIndices, cfg Config) (core1_0.CoreDeviceDriver, core1_0.Queue, core1_0.Queue, error) {
	uniqueFamilies := []int{*indices.GraphicsFamily}
	if *indices.PresentFamily != uniqueFamilies[0] {
		uniqueFamilies = append(uniqueFamilies, *indices.PresentFamily)
	}

	var queueOptions []core1_0.DeviceQueueCreateInfo
	for _, family := range uniqueFamilies {
		queueOptions = append(queueOptions, core1_0.DeviceQueueCreateInfo{
			QueueFamilyIndex: family,
			QueuePriorities:  []float32{1.0},
		})
	}

	extensionNames := append([]string{}, cfg.DeviceExtensions...)

	// Vulkan portability implementations such as MoltenVK require the
	// portability-subset extension to be enabled when it is advertised.
	extensions, _, err := instance.EnumerateDeviceExtensionProperties(physicalDevice)
	if err != nil {
		return nil, core1_0.Queue{}, core1_0.Queue{}, err
	}
	if _, ok := extensions[khr_portability_subset.ExtensionName]; ok {
		extensionNames = append(extensionNames, khr_portability_subset.ExtensionName)
	}

	device, _, err := instance.CreateDevice(physicalDevice, nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos:      queueOptions,
		EnabledExtensionNames: extensionNames,
	})
	if err != nil {
		return nil, core1_0.Queue{}, core1_0.Queue{}, err
	}

	graphicsQueue := device.GetQueue(*indices.GraphicsFamily, 0)
	presentQueue := device.GetQueue(*indices.PresentFamily, 0)

	return device, graphicsQueue, presentQueue, nil
}
