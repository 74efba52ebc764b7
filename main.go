package main

import "github.com/truvida/truvida/cmd"

func main() {
	cmd.Execute()
}
