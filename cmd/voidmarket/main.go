package main

import (
	"os"

	"github.com/rustyeddy/voidmarket/cmd/voidmarket/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
