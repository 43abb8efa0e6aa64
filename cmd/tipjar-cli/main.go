package main

import "tipjar/cmd/tipjar-cli/cmd"

func main() {
	cmd.Execute()
}
