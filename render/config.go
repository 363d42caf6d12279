package render

import (
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

// Config carries the immutable bring-up parameters. It is built once at
// startup and threaded through every constructor; nothing in this package
// reads process-wide state.
type Config struct {
	AppName       string
	AppVersion    common.Version
	EngineName    string
	EngineVersion common.Version
	APIVersion    common.APIVersion

	// EnableValidation requests the layers in ValidationLayers plus the
	// debug-utils extension. Missing layers fail instance creation.
	EnableValidation bool
	ValidationLayers []string

	DeviceExtensions []string

	// FallbackExtent is the requested swapchain extent when the surface
	// reports an undefined current extent and the window cannot provide
	// a drawable size.
	FallbackExtent core1_0.Extent2D
}

func DefaultConfig() Config {
	return Config{
		AppName:          "Glint demo",
		AppVersion:       common.CreateVersion(0, 1, 0),
		EngineName:       "Glint",
		EngineVersion:    common.CreateVersion(0, 1, 0),
		APIVersion:       common.Vulkan1_2,
		EnableValidation: true,
		ValidationLayers: []string{"VK_LAYER_KHRONOS_validation"},
		DeviceExtensions: []string{khr_swapchain.ExtensionName},
		FallbackExtent:   core1_0.Extent2D{Width: 1024, Height: 768},
	}
}
