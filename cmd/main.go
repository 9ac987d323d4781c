package main

import "cabcab/pkg/cli"

func main() {
	cli.Execute()
}
