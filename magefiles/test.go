//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs all unit tests.
func (Test) Unit() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Runs all tests with the race detector.
func (Test) Race() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}

// Runs the OBJ parser benchmarks.
func (Test) Bench() error {
	_, err := executeCmd("go", withArgs("test", "-run", "^$", "-bench", ".", "-benchmem", "./pkg/obj"), withStream())
	return err
}
