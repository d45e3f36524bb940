package main

import (
	"github.com/courtshot/courtshot/internal/cli"
)

func main() {
	cli.Execute()
}
