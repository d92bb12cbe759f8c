//go:build !linux && !darwin
// +build !linux,!darwin

package main

import (
	"os"
)

func signals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
