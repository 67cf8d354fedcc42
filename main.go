package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"postfeed/service"
)

// CliVersion is reported by the version command.
const CliVersion = "1.0.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	if len(args) > 0 && strings.ToLower(args[0]) == "version" {
		fmt.Fprintf(stdout, "postfeed version %s\n", CliVersion)
		return 0
	}
	return service.HandleCommand(args, stdout)
}
