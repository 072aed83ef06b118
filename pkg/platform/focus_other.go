//go:build !darwin

package platform

// IsAppActive always returns true on non-macOS platforms, so the notice
// window is never forced to the front there.
func IsAppActive() bool {
	return true
}

// ActivateApp is a no-op on non-macOS platforms
func ActivateApp() {}
