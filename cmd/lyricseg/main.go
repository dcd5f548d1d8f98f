package main

import (
	"os"

	"github.com/randalmurphal/lyricseg/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
