package render

import (
	"fmt"
	"log"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
)

// SwapchainSupportDetails is a transient snapshot of what the surface can do
// on a given device. It is re-queried at each call site rather than cached;
// the device and surface are assumed not to change during a single run.
type SwapchainSupportDetails struct {
	Capabilities *khr_surface.SurfaceCapabilities
	Formats      []khr_surface.SurfaceFormat
	PresentModes []khr_surface.PresentMode
}

// DeviceFacts is a read-only snapshot of everything device selection needs
// to know about one physical device. Selection itself never touches the
// API; it runs over these facts.
type DeviceFacts struct {
	Name       string
	DeviceID   uint32
	Type       core1_0.PhysicalDeviceType
	APIVersion common.APIVersion

	QueueFamilies []core1_0.QueueFamilyProperties
	// PresentSupport[i] reports whether queue family i can present to the
	// bound surface.
	PresentSupport []bool
	Extensions     map[string]struct{}
	Swapchain      SwapchainSupportDetails
}

// prober issues the raw capability queries against the instance and surface.
// It creates no objects.
type prober struct {
	instance         core1_0.CoreInstanceDriver
	surfaceExtension khr_surface.ExtensionDriver
	surface          khr_surface.Surface
}

func (p *prober) deviceFacts(device core1_0.PhysicalDevice) (DeviceFacts, error) {
	properties, err := p.instance.GetPhysicalDeviceProperties(device)
	if err != nil {
		return DeviceFacts{}, errors.Wrap(err, "querying device properties")
	}

	facts := DeviceFacts{
		Name:       properties.DriverName,
		DeviceID:   properties.DeviceID,
		Type:       properties.DriverType,
		APIVersion: properties.APIVersion,
		Extensions: map[string]struct{}{},
	}
	for _, family := range p.instance.GetPhysicalDeviceQueueFamilyProperties(device) {
		facts.QueueFamilies = append(facts.QueueFamilies, *family)
	}

	for familyIndex := range facts.QueueFamilies {
		supported, _, err := p.surfaceExtension.GetPhysicalDeviceSurfaceSupport(p.surface, device, familyIndex)
		if err != nil {
			return DeviceFacts{}, errors.Wrapf(err, "querying present support for queue family %d", familyIndex)
		}
		facts.PresentSupport = append(facts.PresentSupport, supported)
	}

	extensions, _, err := p.instance.EnumerateDeviceExtensionProperties(device)
	if err != nil {
		return DeviceFacts{}, errors.Wrap(err, "enumerating device extensions")
	}
	for name := range extensions {
		facts.Extensions[name] = struct{}{}
	}

	facts.Swapchain, err = p.swapchainSupport(device)
	if err != nil {
		return DeviceFacts{}, err
	}

	return facts, nil
}

func (p *prober) swapchainSupport(device core1_0.PhysicalDevice) (SwapchainSupportDetails, error) {
	var details SwapchainSupportDetails
	var err error

	details.Capabilities, _, err = p.surfaceExtension.GetPhysicalDeviceSurfaceCapabilities(p.surface, device)
	if err != nil {
		return details, errors.Wrap(err, "querying surface capabilities")
	}

	details.Formats, _, err = p.surfaceExtension.GetPhysicalDeviceSurfaceFormats(p.surface, device)
	if err != nil {
		return details, errors.Wrap(err, "querying surface formats")
	}

	details.PresentModes, _, err = p.surfaceExtension.GetPhysicalDeviceSurfacePresentModes(p.surface, device)
	if err != nil {
		return details, errors.Wrap(err, "querying surface present modes")
	}

	return details, nil
}

// logDeviceFacts prints the per-device diagnostic records. Informational
// only; selection never reads the log.
func logDeviceFacts(facts DeviceFacts) {
	log.Printf("device: %s, id: %d, type: %s", facts.Name, facts.DeviceID, facts.Type)
	log.Printf("API version: %s", versionString(int(facts.APIVersion.Major()), int(facts.APIVersion.Minor()), int(facts.APIVersion.Patch())))
	log.Printf("queue families: %d", len(facts.QueueFamilies))
	log.Printf("# queues\tGraphics\tCompute\tTransfer\tSparse Binding\tPresent")

	for familyIndex, family := range facts.QueueFamilies {
		present := familyIndex < len(facts.PresentSupport) && facts.PresentSupport[familyIndex]
		log.Printf("%d\t\t%s\t\t%s\t\t%s\t\t%s\t\t%s",
			family.QueueCount,
			yesNo(family.QueueFlags&core1_0.QueueGraphics != 0),
			yesNo(family.QueueFlags&core1_0.QueueCompute != 0),
			yesNo(family.QueueFlags&core1_0.QueueTransfer != 0),
			yesNo(family.QueueFlags&core1_0.QueueSparseBinding != 0),
			yesNo(present))
	}
}

func versionString(major, minor, patch int) string {
	return fmt.Sprintf("%d.%d.%d", major, minor, patch)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
