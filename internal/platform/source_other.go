//go:build !linux && !darwin && !windows

package platform

import "runtime"

type unsupportedSource struct{}

// Current returns the version source for the running system
func Current() VersionSource { return unsupportedSource{} }

func (unsupportedSource) Label() string { return runtime.GOOS }

func (unsupportedSource) Version() (string, error) { return "", ErrUnsupportedPlatform }
