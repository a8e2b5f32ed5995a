package main

import (
	"log"

	"github.com/hexbee/git-diff-viewer/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		log.Fatalf("git-diff-viewer: %v", err)
	}
}
