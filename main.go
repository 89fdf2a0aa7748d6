package main

import "github.com/mvidal/spur/cmd"

func main() {
	cmd.Execute()
}
