package main

import (
	"github.com/andrescamacho/zoneplanner-go/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
