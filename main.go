package main

import (
	"fmt"
	"os"

	"github.com/pme-sh/hostsfile/cmd"
	"github.com/pme-sh/hostsfile/revision"
)

func main() {
	if len(os.Args) == 2 {
		switch os.Args[1] {
		case "--version", "-v", "version", "v", "ver":
			fmt.Println(revision.GetVersion())
			os.Exit(0)
		}
	}
	cmd.Execute()
}
