package main

import "github.com/sstent/atlog/cmd"

func main() {
	cmd.Execute()
}
