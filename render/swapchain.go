package render

import (
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

// chooseSurfaceFormat prefers 8-bit BGRA paired with the standard
// non-linear SRGB color space; otherwise the first advertised format wins.
func chooseSurfaceFormat(available []khr_surface.SurfaceFormat) khr_surface.SurfaceFormat {
	for _, format := range available {
		if format.Format == core1_0.FormatB8G8R8A8SRGB && format.ColorSpace == khr_surface.ColorSpaceSRGBNonlinear {
			return format
		}
	}

	return available[0]
}

// choosePresentMode prefers mailbox when advertised. FIFO is the fallback;
// it is the only mode the API guarantees.
func choosePresentMode(available []khr_surface.PresentMode) khr_surface.PresentMode {
	for _, presentMode := range available {
		if presentMode == khr_surface.PresentModeMailbox {
			return presentMode
		}
	}

	return khr_surface.PresentModeFIFO
}

// chooseExtent honors the surface-reported extent verbatim unless the
// surface leaves it undefined (-1 sentinel), in which case the requested
// extent is clamped component-wise into the supported range.
func chooseExtent(capabilities *khr_surface.SurfaceCapabilities, requested core1_0.Extent2D) core1_0.Extent2D {
	if capabilities.CurrentExtent.Width != -1 {
		return capabilities.CurrentExtent
	}

	extent := requested
	if extent.Width < capabilities.MinImageExtent.Width {
		extent.Width = capabilities.MinImageExtent.Width
	}
	if extent.Width > capabilities.MaxImageExtent.Width {
		extent.Width = capabilities.MaxImageExtent.Width
	}
	if extent.Height < capabilities.MinImageExtent.Height {
		extent.Height = capabilities.MinImageExtent.Height
	}
	if extent.Height > capabilities.MaxImageExtent.Height {
		extent.Height = capabilities.MaxImageExtent.Height
	}

	return extent
}

// chooseImageCount asks for one image beyond the supported minimum, capped
// at the maximum when one is advertised. A zero maximum means unbounded.
func chooseImageCount(capabilities *khr_surface.SurfaceCapabilities) int {
	imageCount := capabilities.MinImageCount + 1
	if capabilities.MaxImageCount > 0 && imageCount > capabilities.MaxImageCount {
		imageCount = capabilities.MaxImageCount
	}

	return imageCount
}

// chooseSharingMode selects concurrent sharing across both families when the
// graphics and present indices differ, exclusive with no family list
// otherwise.
func chooseSharingMode(indices QueueFamilyIndices) (core1_0.SharingMode, []int) {
	if *indices.GraphicsFamily != *indices.PresentFamily {
		return core1_0.SharingModeConcurrent, []int{*indices.GraphicsFamily, *indices.PresentFamily}
	}

	return core1_0.SharingModeExclusive, nil
}

func createSwapchain(swapchainExtension khr_swapchain.ExtensionDriver, surface khr_surface.Surface, support SwapchainSupportDetails, indices QueueFamilyIndices, requestedExtent core1_0.Extent2D) (khr_swapchain.Swapchain, khr_surface.SurfaceFormat, core1_0.Extent2D, error) {
	surfaceFormat := chooseSurfaceFormat(support.Formats)
	presentMode := choosePresentMode(support.PresentModes)
	extent := chooseExtent(support.Capabilities, requestedExtent)
	imageCount := chooseImageCount(support.Capabilities)
	sharingMode, queueFamilyIndices := chooseSharingMode(indices)

	swapchain, _, err := swapchainExtension.CreateSwapchain(nil, khr_swapchain.SwapchainCreateInfo{
		Surface: surface,

		MinImageCount:    imageCount,
		ImageFormat:      surfaceFormat.Format,
		ImageColorSpace:  surfaceFormat.ColorSpace,
		ImageExtent:      extent,
		ImageArrayLayers: 1,
		ImageUsage:       core1_0.ImageUsageColorAttachment,

		ImageSharingMode:   sharingMode,
		QueueFamilyIndices: queueFamilyIndices,

		PreTransform:   support.Capabilities.CurrentTransform,
		CompositeAlpha: khr_surface.CompositeAlphaOpaque,
		PresentMode:    presentMode,
		Clipped:        true,
	})
	if err != nil {
		return khr_swapchain.Swapchain{}, khr_surface.SurfaceFormat{}, core1_0.Extent2D{}, err
	}

	return swapchain, surfaceFormat, extent, nil
}

// createColorView builds a 2D color view with identity channel mapping and
// a single mip level and array layer.
func createColorView(device core1_0.CoreDeviceDriver, image core1_0.Image, format core1_0.Format) (core1_0.ImageView, error) {
	imageView, _, err := device.CreateImageView(nil, core1_0.ImageViewCreateInfo{
		Image:    image,
		ViewType: core1_0.ImageViewType2D,
		Format:   format,
		SubresourceRange: core1_0.ImageSubresourceRange{
			AspectMask:     core1_0.ImageAspectColor,
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	})

	return imageView, err
}
