package main

import "github.com/josephlewis42/toysh/cmd"

func main() {
	cmd.Execute()
}
