package renderer

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func TestBackendFromVideoDriver(t *testing.T) {
	tests := []struct {
		driver string
		want   Backend
	}{
		{"x11", BackendXlib},
		{"xcb", BackendXcb},
		{"wayland", BackendWayland},
		{"windows", BackendWin32},
	}

	for _, tt := range tests {
		got, err := backendFromVideoDriver(tt.driver)
		if err != nil {
			t.Errorf("backendFromVideoDriver(%q): %v", tt.driver, err)
			continue
		}
		if got != tt.want {
			t.Errorf("backendFromVideoDriver(%q) = %v, want %v", tt.driver, got, tt.want)
		}
	}
}

func TestBackendFromVideoDriverUnsupported(t *testing.T) {
	_, err := backendFromVideoDriver("cocoa")
	if !errors.Is(err, ErrUnsupportedBackend) {
		t.Errorf("got %v, want ErrUnsupportedBackend", err)
	}
}

func TestWSIExtensionName(t *testing.T) {
	tests := []struct {
		backend Backend
		want    string
	}{
		{BackendXlib, "VK_KHR_xlib_surface"},
		{BackendXcb, "VK_KHR_xcb_surface"},
		{BackendWayland, "VK_KHR_wayland_surface"},
		{BackendWin32, "VK_KHR_win32_surface"},
		{BackendUnknown, ""},
	}

	for _, tt := range tests {
		if got := wsiExtensionName(tt.backend); got != tt.want {
			t.Errorf("wsiExtensionName(%v) = %q, want %q", tt.backend, got, tt.want)
		}
	}
}
