// Command isoflow edits, validates and exports isometric diagram documents.
//
// Usage: isoflow <command> [options]
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
