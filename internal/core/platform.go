package core

import "runtime"

// OperatingSystem identifies the host operating system.
type OperatingSystem int

const (
	OSUnknown OperatingSystem = iota
	OSWindows
	OSMac
	OSLinux
)

// String returns a human-readable name for the operating system.
func (o OperatingSystem) String() string {
	switch o {
	case OSWindows:
		return "windows"
	case OSMac:
		return "mac"
	case OSLinux:
		return "linux"
	default:
		return "unknown"
	}
}

// Platform holds information about the host. It is set once at engine
// construction and read-only afterwards.
type Platform struct {
	OS OperatingSystem
}

// DetectPlatform reads the platform identity of the running binary.
func DetectPlatform() Platform {
	return Platform{OS: osFromGOOS(runtime.GOOS)}
}

func osFromGOOS(goos string) OperatingSystem {
	switch goos {
	case "windows":
		return OSWindows
	case "darwin":
		return OSMac
	case "linux":
		return OSLinux
	default:
		return OSUnknown
	}
}
