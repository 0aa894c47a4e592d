package main

import "github.com/byetax/byetax/internal/cli"

func main() {
	cli.Execute()
}
