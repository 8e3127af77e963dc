// ABOUTME: Version constants for the studio
// ABOUTME: Identifies the product in logs and API responses
package version

const (
	// Version is the software version.
	Version = "0.3.0"

	// Product is the product name.
	Product = "VoiceForge Studio"

	// Manufacturer identifies the vendor.
	Manufacturer = "VoiceForge"
)
