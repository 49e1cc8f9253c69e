package main

import "nathanbeddoewebdev/tspec/cmd"

func main() {
	cmd.Execute()
}
