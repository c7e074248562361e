package main

import "github.com/streamrelay/relay/cmd"

func main() {
	cmd.Execute()
}
