package render

import (
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2/v3"
)

// createSurface binds the native window to a presentable surface. The
// surface must outlive the swapchain built on it.
func createSurface(instance core1_0.CoreInstanceDriver, window *sdl.Window) (khr_surface.ExtensionDriver, khr_surface.Surface, error) {
	surfaceExtension := khr_surface.CreateExtensionDriverFromCoreDriver(instance)

	surface, err := vkng_sdl2.CreateSurface(instance.Instance(), surfaceExtension, window)
	if err != nil {
		return nil, khr_surface.Surface{}, err
	}

	return surfaceExtension, surface, nil
}
