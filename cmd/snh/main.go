package main

import "github.com/sistema-nutricional-hospitalar/snh/internal/cli"

func main() {
	cli.Execute()
}
