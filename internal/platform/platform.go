package platform

import (
	"context"
	"errors"
	"runtime"

	"rzdio/internal/bridge"
)

// Capability names served by this package
const (
	MethodGetPlatformVersion = "getPlatformVersion"
	MethodGetPlatformInfo    = "getPlatformInfo"
)

// ErrUnsupportedPlatform is returned by Version on operating systems without a version lookup
var ErrUnsupportedPlatform = errors.New("OS version lookup is not supported on this platform")

// VersionSource supplies the platform label and OS version string
type VersionSource interface {
	Label() string
	Version() (string, error)
}

// Static is a VersionSource with fixed values
type Static struct {
	PlatformLabel   string
	PlatformVersion string
}

func (s Static) Label() string            { return s.PlatformLabel }
func (s Static) Version() (string, error) { return s.PlatformVersion, nil }

type labelOverride struct {
	VersionSource
	label string
}

func (l labelOverride) Label() string { return l.label }

// WithLabel replaces the label reported by src. An empty label returns src unchanged.
func WithLabel(src VersionSource, label string) VersionSource {
	if label == "" {
		return src
	}
	return labelOverride{VersionSource: src, label: label}
}

// PlatformVersion returns the label and the OS version joined by a space,
// e.g. "macOS 14.5".
func PlatformVersion(src VersionSource) (string, error) {
	version, err := src.Version()
	if err != nil {
		return "", err
	}
	return src.Label() + " " + version, nil
}

// Info is the value returned by getPlatformInfo
type Info struct {
	Label   string `json:"label"`
	Version string `json:"version"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
}

// GetInfo collects the platform facts for src
func GetInfo(src VersionSource) (Info, error) {
	version, err := src.Version()
	if err != nil {
		return Info{}, err
	}
	return Info{
		Label:   src.Label(),
		Version: version,
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}, nil
}

// Capabilities returns the platform capabilities backed by src
func Capabilities(src VersionSource) []bridge.Capability {
	return []bridge.Capability{
		{
			Name:        MethodGetPlatformVersion,
			Description: "Returns the platform label followed by the OS version string",
			Handler: bridge.HandlerFunc(func(context.Context, bridge.Call) (any, error) {
				v, err := PlatformVersion(src)
				if err != nil {
					return nil, lookupFailure(err)
				}
				return v, nil
			}),
		},
		{
			Name:        MethodGetPlatformInfo,
			Description: "Returns the platform label, OS version, GOOS and GOARCH",
			Handler: bridge.HandlerFunc(func(context.Context, bridge.Call) (any, error) {
				info, err := GetInfo(src)
				if err != nil {
					return nil, lookupFailure(err)
				}
				return map[string]any{
					"label":   info.Label,
					"version": info.Version,
					"os":      info.OS,
					"arch":    info.Arch,
				}, nil
			}),
		},
	}
}

func lookupFailure(err error) error {
	if errors.Is(err, ErrUnsupportedPlatform) {
		f := bridge.NewHandlerFailure(bridge.CodeUnsupportedPlatform, "%v", err)
		f.Details = map[string]any{"os": runtime.GOOS}
		return f
	}
	return err
}
