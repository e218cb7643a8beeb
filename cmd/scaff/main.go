package main

import "github.com/scaffdev/scaff/internal/cli"

func main() {
	cli.Execute()
}
