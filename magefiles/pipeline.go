//go:build mage

package main

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// run executes the built CLI binary with the given arguments.
func run(args ...string) error {
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Ontology builds the allowed GO catalogue from the configured root term.
func Ontology() error {
	mg.Deps(Build)
	return run("ontology", "descendants")
}

// Mine runs the full co-occurrence mining pipeline, resuming from
// checkpoints where available.
func Mine() error {
	mg.Deps(Build)
	return run("mine", "--resume")
}
