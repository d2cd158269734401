package main

import (
	"os"

	"github.com/rileysklar/BookNook/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}
