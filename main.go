package main

import "github.com/kasuboski/arrqueue/cmd"

func main() {
	cmd.Execute()
}
