package main

import "cursey/gennypp/cmd/gennypp/commands"

func main() {
	commands.Execute()
}
