package shell

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hpcfactory/condor-api/process"
)

// Console is the operator side of an interactive execution. It is an
// interface so the loop can be driven by a scripted console in tests.
type Console interface {
	// Prompt prints prompt and reads one line of operator input.
	Prompt(prompt string) (string, error)
	Print(s string)
}

type stdConsole struct {
	in *bufio.Reader
}

// StdConsole returns a Console backed by os.Stdin and os.Stdout.
func StdConsole() Console {
	return &stdConsole{in: bufio.NewReader(os.Stdin)}
}

func (c *stdConsole) Prompt(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := c.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}

func (c *stdConsole) Print(s string) {
	fmt.Println(s)
}

type choice int

const (
	choiceHelp choice = iota
	choiceInput
	choiceOutput
	choiceTerminate
	choiceKill
)

func parseChoice(s string) choice {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "input", "i", "in", "inp":
		return choiceInput
	case "output", "o", "out", "print", "p":
		return choiceOutput
	case "terminate", "term", "t", "te", "ter":
		return choiceTerminate
	case "kill", "k", "ki", "kil":
		return choiceKill
	default:
		return choiceHelp
	}
}

const interactiveHelp = `The process has not finished yet.  It is either taking a while or it
is waiting for your input.  To interact with it, choose from one of the
following options:
  input: Give the program some keyboard input.
  output: Check to see if the program has said anything else since just now.
          Note that if you do this after the program is done reading input,
          it will print the output AND EXIT.
  terminate: Finish whatever the process was doing and nicely end the job.
  kill: Immediately end the process.  Do this if the process is being bad.
  help: This text.`

// ExecuteInteractive runs command on the target and hands control of the
// child to the operator: each round the console is asked for one of input,
// output, terminate or kill, until the child exits. Anything else prints a
// help message and re-prompts. If the command exits before the first prompt,
// its output is printed and the loop is skipped.
func (s *Shell) ExecuteInteractive(ctx context.Context, command string, console Console) error {
	if console == nil {
		console = StdConsole()
	}
	p, err := process.Launch(ctx, s.buildCommand(command))
	if err != nil {
		return err
	}
	if _, exited := p.Poll(); exited {
		out, err := p.Get()
		if err != nil {
			return err
		}
		console.Print(out)
		return nil
	}
	for {
		if _, exited := p.Poll(); exited {
			return nil
		}
		answer, err := console.Prompt("input, output, terminate, kill, help: ")
		if err != nil {
			return err
		}
		switch parseChoice(answer) {
		case choiceInput:
			line, err := console.Prompt("stdin: ")
			if err != nil {
				return err
			}
			if err := p.Put([]byte(line)); err != nil {
				return err
			}
		case choiceOutput:
			out, err := p.Get()
			if err != nil {
				return err
			}
			console.Print(out)
		case choiceTerminate:
			p.Terminate()
		case choiceKill:
			p.Kill()
		default:
			console.Print(interactiveHelp)
		}
	}
}
