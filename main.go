package main

import "github.com/StinkyLord/boardcfg/cmd"

func main() {
	cmd.Execute()
}
