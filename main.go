package main

import "github.com/JaroVoltix/TestLint/cmd"

func main() {
	cmd.Execute()
}
