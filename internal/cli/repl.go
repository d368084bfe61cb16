package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/fsm"
	"github.com/aretw0/rewind/pkg/session"
)

const helpText = `Commands:
  trigger|t <event>   fire an event from the current state
  goto <state>        jump to any defined state
  undo                step back in history
  redo                step forward in history
  reset               return to the initial state
  clear               drop undo/redo history
  states [event]      list states, optionally only those handling event
  events              list events permitted from the current state
  history             show the history with the cursor marked
  help                show this text
  exit|quit           leave`

// Repl drives one session from line-oriented input.
type Repl struct {
	manager   *session.Manager
	sessionID string
	in        io.Reader
	out       io.Writer

	// Quiet suppresses the prompt and banner, leaving only command output.
	Quiet bool
}

// NewRepl creates a loop over the given session.
func NewRepl(manager *session.Manager, sessionID string, in io.Reader, out io.Writer) *Repl {
	return &Repl{
		manager:   manager,
		sessionID: sessionID,
		in:        in,
		out:       out,
	}
}

// Run starts (or resumes) the session and processes commands until the
// input ends, a quit command is read or ctx is cancelled.
func (r *Repl) Run(ctx context.Context) error {
	snap, err := r.manager.Start(ctx, r.sessionID)
	if err != nil {
		return fmt.Errorf("failed to init session: %w", err)
	}
	if !r.Quiet {
		printSystemMessage(r.out, "Session '%s' at '%s'. Type 'help' for commands.", r.sessionID, snap.Current)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	current := snap.Current
	for {
		r.prompt(current)

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok = <-lines:
		}
		if !ok {
			select {
			case err := <-readErr:
				return err
			default:
				return nil
			}
		}

		quit, state, err := r.Exec(ctx, line)
		if err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
		if state != "" {
			current = state
		}
	}
}

func (r *Repl) prompt(state string) {
	if !r.Quiet {
		fmt.Fprintf(r.out, "[%s]> ", state)
	}
}

// Exec runs a single command line. It reports whether the loop should stop
// and, when known, the current state after the command.
func (r *Repl) Exec(ctx context.Context, line string) (bool, string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, "", nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "exit", "quit", "q":
		return true, "", nil

	case "help", "?":
		fmt.Fprintln(r.out, helpText)
		return false, "", nil

	case "trigger", "t":
		if len(args) != 1 {
			return false, "", fmt.Errorf("usage: trigger <event>")
		}
		snap, err := r.manager.Trigger(ctx, r.sessionID, args[0])
		return r.printState(snap, err)

	case "goto":
		if len(args) != 1 {
			return false, "", fmt.Errorf("usage: goto <state>")
		}
		snap, err := r.manager.ChangeState(ctx, r.sessionID, args[0])
		return r.printState(snap, err)

	case "undo", "redo":
		var moved bool
		var snap domain.Snapshot
		var err error
		if cmd == "undo" {
			moved, snap, err = r.manager.Undo(ctx, r.sessionID)
		} else {
			moved, snap, err = r.manager.Redo(ctx, r.sessionID)
		}
		if err != nil {
			return false, "", err
		}
		if !moved {
			fmt.Fprintf(r.out, "nothing to %s\n", cmd)
			return false, snap.Current, nil
		}
		return r.printState(snap, nil)

	case "reset":
		snap, err := r.manager.Reset(ctx, r.sessionID)
		return r.printState(snap, err)

	case "clear":
		snap, err := r.manager.ClearHistory(ctx, r.sessionID)
		if err != nil {
			return false, "", err
		}
		fmt.Fprintln(r.out, "history cleared")
		return false, snap.Current, nil

	case "states":
		machine := fsm.New(r.manager.Definition())
		states := machine.States()
		if len(args) > 0 {
			states = machine.StatesWithEvent(args[0])
		}
		fmt.Fprintln(r.out, joinOrNone(states))
		return false, "", nil

	case "events":
		machine, err := r.manager.Machine(ctx, r.sessionID)
		if err != nil {
			return false, "", err
		}
		fmt.Fprintln(r.out, joinOrNone(machine.PermittedEvents()))
		return false, machine.State(), nil

	case "history":
		snap, err := r.manager.Load(ctx, r.sessionID)
		if err != nil {
			return false, "", err
		}
		for i, state := range snap.History {
			marker := " "
			if i == snap.Cursor {
				marker = "*"
			}
			fmt.Fprintf(r.out, "%s %d %s\n", marker, i, state)
		}
		return false, snap.Current, nil
	}

	return false, "", fmt.Errorf("unknown command %q (type 'help')", cmd)
}

func (r *Repl) printState(snap domain.Snapshot, err error) (bool, string, error) {
	if err != nil {
		return false, "", err
	}
	fmt.Fprintf(r.out, "state: %s\n", snap.Current)
	return false, snap.Current, nil
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
