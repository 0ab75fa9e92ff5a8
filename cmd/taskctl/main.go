package main

import (
	"os"
)

func main() {
	if err := NewRootCmd(nil).Execute(); err != nil {
		os.Exit(1)
	}
}
