package main

import "github.com/iburimskiy/cyber-vortex/cmd"

func main() {
	cmd.Execute()
}
