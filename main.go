package main

import "housing-credit/cmd"

func main() {
	cmd.Execute()
}
