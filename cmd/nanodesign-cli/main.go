package main

import "nanodesign/cmd/nanodesign-cli/cmd"

func main() {
	cmd.Execute()
}
