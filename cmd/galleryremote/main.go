package main

import (
	"context"
	"os"

	"github.com/anitschke/go-galleryremote/internal/cmd"
)

func main() {
	if err := cmd.Execute(context.Background(), os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
