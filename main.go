package main

import (
	"github.com/hancao97/hanai-wealth/cmd"
)

func main() {
	cmd.Execute()
}
