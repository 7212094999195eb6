package main

import "honnef.co/go/airfoil/internal/cli"

func main() {
	cli.Execute()
}
