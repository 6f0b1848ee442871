package main

import (
	"github.com/charmbracelet/log"

	"github.com/mithrel/mdnotes/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
