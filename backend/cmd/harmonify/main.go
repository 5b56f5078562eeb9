package main

import (
	"fmt"
	"os"

	"harmonify/backend/pkg/logger"
)

func main() {
	err := newHarmonifyCmd().Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
