package main

import (
	"github.com/redjax/kparams/cmd"
)

func main() {
	cmd.Execute()
}
