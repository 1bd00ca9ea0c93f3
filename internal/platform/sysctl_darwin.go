//go:build darwin

package platform

import (
	"fmt"

	"golang.org/x/sys/unix"
)

type sysctlSource struct {
	label string
}

func (s sysctlSource) Label() string { return s.label }

func (s sysctlSource) Version() (string, error) {
	v, err := unix.Sysctl("kern.osproductversion")
	if err != nil {
		return "", fmt.Errorf("sysctl kern.osproductversion: %w", err)
	}
	return v, nil
}
