package main

import "github.com/itsmostafa/ipycell/cmd"

func main() {
	cmd.Execute()
}
