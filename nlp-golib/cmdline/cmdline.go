package cmdline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	arg "github.com/alexflint/go-arg"
)

// Command represents an action that can be run from the command line.
type Command struct {
	Name     string
	Synopsis string
	Args     Handler
}

// Handler represents a function that gets called for an action.
type Handler interface {
	Handle() error
}

// Validator is the interface for custom validation of command line arguments.
type Validator interface {
	Validate() error
}

func prog() string {
	if len(os.Args) > 0 {
		return filepath.Base(os.Args[0])
	}
	return "program"
}

func writeUsage(w io.Writer, cmds []Command) {
	fmt.Fprintf(w, "Usage: %s COMMAND [ARGS]\n", prog())
	fmt.Fprintf(w, "Command can be one of:\n")
	for _, cmd := range cmds {
		fmt.Fprintf(w, "  %-16s %s\n", cmd.Name, cmd.Synopsis)
	}
	fmt.Fprintf(w, "  %-16s %s\n", "help [COMMAND]", "display help and exit")
}

func usageExit(code int, cmds []Command, msg string) {
	writeUsage(os.Stdout, cmds)
	if msg != "" {
		fmt.Println("\nError:", msg)
	}
	os.Exit(code)
}

// MustDispatch parses os.Args, dispatches the matching command, and exits
// on parse or handler failure.
func MustDispatch(cmds ...Command) {
	if len(os.Args) < 2 {
		usageExit(1, cmds, "no command provided")
	}

	var help bool
	action := os.Args[1]
	argv := os.Args[2:]
	if action == "help" {
		if len(os.Args) < 3 {
			usageExit(0, cmds, "")
		}
		help = true
		action = os.Args[2]
		argv = os.Args[3:]
	}

	var cmd *Command
	for i := range cmds {
		if cmds[i].Name == action {
			cmd = &cmds[i]
			break
		}
	}
	if cmd == nil {
		usageExit(1, cmds, "unknown command "+action)
	}

	parser, err := arg.NewParser(arg.Config{Program: prog() + " " + cmd.Name}, cmd.Args)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if help {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}
	if err := parser.Parse(argv); err != nil {
		parser.Fail(err.Error())
	}
	if v, ok := cmd.Args.(Validator); ok {
		if err := v.Validate(); err != nil {
			parser.Fail(err.Error())
		}
	}
	if err := cmd.Args.Handle(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
