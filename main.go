package main

import (
	"github.com/warlice/backlightctl/internal/cmd"
)

func main() {
	cmd.Execute()
}
