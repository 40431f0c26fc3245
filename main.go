package main

import "github.com/notargets/gobsl/cmd"

func main() {
	cmd.Execute()
}
