package main

import "github.com/kylesnowschwartz/zsh-ai-cmd/cmd"

func main() {
	cmd.Execute()
}
