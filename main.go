package main

import (
	"fmt"
	"os"

	"chainrelay/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Printf("chainrelay run into an error: %s\n", err)
		os.Exit(1)
	}
}
