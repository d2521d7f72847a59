package main

import (
	"fmt"
	"os"

	"github.com/mmjournal/mmjournal/config"
)

func main() {
	if err := newRootCmd(config.Load).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
