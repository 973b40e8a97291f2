package main

import (
	"os"

	"animd/internal/ctl"
)

func main() {
	os.Exit(ctl.Main())
}
