//go:build windows

package platform

import (
	"fmt"

	"golang.org/x/sys/windows"
)

type rtlSource struct{}

// Current returns the version source for the running system
func Current() VersionSource { return rtlSource{} }

func (rtlSource) Label() string { return "Windows" }

func (rtlSource) Version() (string, error) {
	v := windows.RtlGetVersion()
	return fmt.Sprintf("%d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber), nil
}
