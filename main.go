package main

import "nathanbeddoewebdev/opsdeck/cmd"

func main() {
	cmd.Execute()
}
