// Package main provides the simple-neuralnetwork CLI.
package main

import (
	"fmt"
	"os"
)

const version = "v0.1.0"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("simple-neuralnetwork %s\n", version)
		return
	}

	fmt.Println("simple-neuralnetwork - feedforward networks with backpropagation in Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("")
	fmt.Println("See examples/xor for a runnable training demo.")
}
