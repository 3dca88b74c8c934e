package main

import (
	"os"

	"github.com/Emirhan-Denizyol/llm-memory-assistant/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
