//go:build linux

package platform

import (
	"fmt"

	"golang.org/x/sys/unix"
)

type unameSource struct{}

// Current returns the version source for the running system
func Current() VersionSource { return unameSource{} }

func (unameSource) Label() string { return "Linux" }

// Version reports the kernel version field of uname(2)
func (unameSource) Version() (string, error) {
	var uname unix.Utsname
	if err := unix.Uname(&uname); err != nil {
		return "", fmt.Errorf("uname: %w", err)
	}
	return unix.ByteSliceToString(uname.Version[:]), nil
}
