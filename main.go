package main

import "github.com/forgelabs/unitforge/cmd"

func main() {
	cmd.Execute()
}
