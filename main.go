package main

import "github.com/airlift-sh/airlift/cmd"

func main() {
	cmd.Execute()
}
