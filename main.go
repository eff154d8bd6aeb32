package main

import "github.com/user/markerman/cmd"

func main() {
	cmd.Execute()
}
