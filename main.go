package main

import "github.com/rinchamnan16/younan24/cmd"

func main() {
	cmd.Execute()
}
