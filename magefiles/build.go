//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// binary is where Build places the renderer
var binary = filepath.Join("bin", "pathtracer")

// Build compiles the renderer into bin/.
func Build() error {
	if err := os.MkdirAll("bin", 0755); err != nil {
		return err
	}
	_, err := executeCmd("go", withArgs("build", "-o", binary, "."), withStream())
	return err
}

// Test runs every package's tests with the race detector.
func Test() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}

type Render mg.Namespace

// Preview renders the default scene quickly at low resolution.
func (Render) Preview() error {
	mg.Deps(Build)
	_, err := executeCmd(binary, withArgs("-scene", "default", "-width", "200", "-samples", "16", "-passes", "2"), withStream())
	return err
}

// Final renders the random sphere field at full quality.
func (Render) Final() error {
	mg.Deps(Build)
	_, err := executeCmd(binary, withArgs("-scene", "final", "-grid", "11", "-passes", "5"), withStream())
	return err
}

// Scenes renders every bundled scene file.
func (Render) Scenes() error {
	mg.Deps(Build)
	files, err := filepath.Glob(filepath.Join("scenes", "*.toml"))
	if err != nil {
		return err
	}
	for _, file := range files {
		if _, err := executeCmd(binary, withArgs("-scene", file, "-samples", "32"), withEnv("NO_COLOR=1"), withStream()); err != nil {
			return err
		}
	}
	return nil
}
