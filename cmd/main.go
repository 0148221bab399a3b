package main

import "decor_admin/cmd/commands"

func main() {
	commands.Execute()
}
