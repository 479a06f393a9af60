package main

import "showroom/internal/cli"

func main() {
	cli.Execute()
}
