package render

import (
	"log"

	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
)

// createInstance builds the Vulkan instance with the surface extensions the
// window requires, the debug-utils extension when validation is on, and the
// portability-enumeration extension when the driver offers it. Requested
// validation layers are verified up front; a missing layer is fatal.
func createInstance(globalDriver core1_0.GlobalDriver, window *sdl.Window, cfg Config) (core1_0.CoreInstanceDriver, error) {
	instanceOptions := core1_0.InstanceCreateInfo{
		ApplicationName:    cfg.AppName,
		ApplicationVersion: cfg.AppVersion,
		EngineName:         cfg.EngineName,
		EngineVersion:      cfg.EngineVersion,
		APIVersion:         cfg.APIVersion,
	}

	extensions, _, err := globalDriver.AvailableExtensions()
	if err != nil {
		return nil, errors.Wrap(err, "enumerating instance extensions")
	}

	for _, ext := range window.VulkanGetInstanceExtensions() {
		if _, ok := extensions[ext]; !ok {
			return nil, errors.Newf("required surface extension %s is not available", ext)
		}
		instanceOptions.EnabledExtensionNames = append(instanceOptions.EnabledExtensionNames, ext)
	}

	if cfg.EnableValidation {
		instanceOptions.EnabledExtensionNames = append(instanceOptions.EnabledExtensionNames, ext_debug_utils.ExtensionName)
	}

	if _, ok := extensions[khr_portability_enumeration.ExtensionName]; ok {
		instanceOptions.EnabledExtensionNames = append(instanceOptions.EnabledExtensionNames, khr_portability_enumeration.ExtensionName)
		instanceOptions.Flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}

	if cfg.EnableValidation {
		layers, _, err := globalDriver.AvailableLayers()
		if err != nil {
			return nil, errors.Wrap(err, "enumerating instance layers")
		}

		for _, layer := range cfg.ValidationLayers {
			if _, ok := layers[layer]; !ok {
				return nil, errors.Newf("validation layer %s requested but not available - install the LunarG Vulkan SDK", layer)
			}
			instanceOptions.EnabledLayerNames = append(instanceOptions.EnabledLayerNames, layer)
		}

		// Chaining the messenger options here covers instance creation and
		// destruction, which happen outside the messenger's own lifetime.
		instanceOptions.Next = debugMessengerOptions()
	}

	instance, _, err := globalDriver.CreateInstance(nil, instanceOptions)
	if err != nil {
		return nil, err
	}

	return instance, nil
}

func debugMessengerOptions() ext_debug_utils.DebugUtilsMessengerCreateInfo {
	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: ext_debug_utils.SeverityError | ext_debug_utils.SeverityWarning,
		MessageType:     ext_debug_utils.TypeGeneral | ext_debug_utils.TypeValidation | ext_debug_utils.TypePerformance,
		UserCallback:    logDebugMessage,
	}
}

func createDebugMessenger(instance core1_0.CoreInstanceDriver) (ext_debug_utils.ExtensionDriver, ext_debug_utils.DebugUtilsMessenger, error) {
	debugDriver := ext_debug_utils.CreateExtensionDriverFromCoreDriver(instance)

	messenger, _, err := debugDriver.CreateDebugUtilsMessenger(nil, debugMessengerOptions())
	if err != nil {
		return nil, ext_debug_utils.DebugUtilsMessenger{}, err
	}

	return debugDriver, messenger, nil
}

func logDebugMessage(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
	log.Printf("[%s %s] - %s", severity, msgType, data.Message)
	return false
}
