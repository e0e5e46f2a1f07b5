package main

import (
	"github.com/shd101wyy/k-1/cmd"
	"os"
)

func main() {
	err := cmd.Execute(cmd.NewRootCmd())
	if err != nil {
		os.Exit(1)
	}
}
