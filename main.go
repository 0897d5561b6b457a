package main

import "github.com/HFBDGD/prompt-copilot/cmd"

func main() {
	cmd.Execute()
}
