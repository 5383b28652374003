package main

import "calculator_lab/internal/cli"

func main() {
	cli.Execute()
}
