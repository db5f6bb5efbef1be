package main

import (
	"fmt"
	"os"

	"nebasemap/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, tui.Failure(err))
		os.Exit(1)
	}
}
