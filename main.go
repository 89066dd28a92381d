package main

import (
	"context"
	"os"

	"github.com/abhisek/trainy/cmd"
)

func main() {
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
