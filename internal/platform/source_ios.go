//go:build ios

package platform

// Current returns the version source for the running system
func Current() VersionSource { return sysctlSource{label: "iOS"} }
