// Package platform provides the capability handlers that report facts about
// the operating system rzdio runs on.
//
// The OS-specific lookup is selected at build time: each supported GOOS has
// a source_<os>.go file providing Current. Tests and configuration overrides
// use Static or WithLabel instead of touching the real system.
package platform
