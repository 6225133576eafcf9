package main

import "notive/cmd/client/cmd"

func main() {
	cmd.Execute()
}
