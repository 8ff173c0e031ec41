package main

import "github.com/sw33tLie/platescope/cmd"

func main() {
	cmd.Execute()
}
