//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds objtool into ./bin.
func (Build) Objtool() error {
	out := filepath.Join("bin", "objtool")
	_, err := executeCmd("go", withArgs("build", "-o", out, "./cmd/objtool"), withStream())
	return err
}

// Runs go mod tidy and go vet.
func (Build) Tidy() error {
	if _, err := executeCmd("go", withArgs("mod", "tidy")); err != nil {
		return err
	}
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}
