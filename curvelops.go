package curvelops

import (
	"github.com/PyLops/curvelops/bridge"
	"github.com/PyLops/curvelops/native"
)

// Version is the module release version.
const Version = "0.1.0"

// New2D creates a marshalling pipeline for two-dimensional transforms
// backed by lib.
func New2D(lib native.Library) (*bridge.Pipeline, error) {
	return bridge.New(2, lib)
}

// New3D creates a marshalling pipeline for three-dimensional transforms
// backed by lib.
func New3D(lib native.Library) (*bridge.Pipeline, error) {
	return bridge.New(3, lib)
}
