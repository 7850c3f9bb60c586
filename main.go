package main

import "github.com/iksnae/trace-view/cmd"

func main() {
	cmd.Execute()
}
