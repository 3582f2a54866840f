package main

import "github.com/newgrf/nch/internal/cli"

func main() {
	cli.Execute()
}
