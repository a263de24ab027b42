// Package interactive provides the interactive command-line interface
// for the basic platform daemon.
package interactive

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"

	"github.com/tai-platform/tai-go/pkg/basic"
	"github.com/tai-platform/tai-go/pkg/fsm"
	"github.com/tai-platform/tai-go/pkg/oid"
	"github.com/tai-platform/tai-go/pkg/tai"
)

// Shell handles interactive mode for tai-basicd.
type Shell struct {
	platform *basic.Platform
	rl       *readline.Instance
}

// New creates a new interactive shell over the platform.
func New(platform *basic.Platform) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "tai> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Shell{platform: platform, rl: rl}, nil
}

// Run starts the interactive command loop. It returns when the user
// quits or closes the input.
func (s *Shell) Run() {
	defer s.rl.Close()

	s.printHelp()

	for {
		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "list", "l":
			s.cmdList()

		case "status", "s":
			s.cmdStatus(args)

		case "get", "g":
			s.cmdGet(args)

		case "tx-dis", "tx":
			s.cmdTxDis(args)

		case "transit", "t":
			s.cmdTransit(args)

		case "quit", "exit", "q":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return

		default:
			fmt.Fprintf(s.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
Platform Commands:
  list                     - List all modules and their objects
  status <location>        - Show a module's state machine status
  get <location> <attr>    - Read a module attribute (location)
  tx-dis <location> <val>  - Set the netif tx-dis attribute (on/off)
  transit <loc> <state>    - Request a state transition (INIT, READY, END, ...)

  help                     - Show this help
  quit                     - Exit`)
}

// moduleAt resolves a location argument to a live module.
func (s *Shell) moduleAt(location string) *basic.Module {
	for _, m := range s.platform.Modules() {
		if m.Location() == location {
			return m
		}
	}
	return nil
}

func (s *Shell) cmdList() {
	modules := s.platform.Modules()
	if len(modules) == 0 {
		fmt.Fprintln(s.rl.Stdout(), "No modules")
		return
	}

	for _, m := range modules {
		mfsm := m.FSM()
		fmt.Fprintf(s.rl.Stdout(), "module %s  location=%s  state=%s\n",
			m.ID(), m.Location(), mfsm.CurrentState())
		if n := mfsm.NetIf(); n != nil {
			fmt.Fprintf(s.rl.Stdout(), "  netif  %s  index=%d\n", n.ID(), n.Index())
		}
		for i := 0; i < basic.NumHostIf; i++ {
			if h := mfsm.HostIf(i); h != nil {
				fmt.Fprintf(s.rl.Stdout(), "  hostif %s  index=%d\n", h.ID(), h.Index())
			}
		}
	}
}

func (s *Shell) cmdStatus(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: status <location>")
		return
	}

	m := s.moduleAt(args[0])
	if m == nil {
		fmt.Fprintf(s.rl.Stdout(), "No module at location %s\n", args[0])
		return
	}

	mfsm := m.FSM()
	fmt.Fprintf(s.rl.Stdout(), "id:         %s\n", m.ID())
	fmt.Fprintf(s.rl.Stdout(), "location:   %s\n", m.Location())
	fmt.Fprintf(s.rl.Stdout(), "state:      %s\n", mfsm.CurrentState())
	fmt.Fprintf(s.rl.Stdout(), "configured: %v\n", mfsm.Configured())
	fmt.Fprintf(s.rl.Stdout(), "run-id:     %s\n", mfsm.RunID())
}

func (s *Shell) cmdGet(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: get <location> <attr>")
		fmt.Fprintln(s.rl.Stdout(), "  Attributes: location, tx-dis")
		return
	}

	m := s.moduleAt(args[0])
	if m == nil {
		fmt.Fprintf(s.rl.Stdout(), "No module at location %s\n", args[0])
		return
	}

	var id oid.ID
	var attrID tai.AttrID
	switch strings.ToLower(args[1]) {
	case "location":
		id, attrID = m.ID(), tai.ModuleAttrLocation
	case "tx-dis":
		n := m.FSM().NetIf()
		if n == nil {
			fmt.Fprintln(s.rl.Stdout(), "Module has no netif")
			return
		}
		id, attrID = n.ID(), tai.NetworkIfAttrTxDis
	default:
		fmt.Fprintf(s.rl.Stdout(), "Unknown attribute: %s\n", args[1])
		return
	}

	value, err := s.platform.GetAttribute(id, attrID)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v (status %s)\n", err, tai.StatusOf(err))
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "%s = %v\n", args[1], value)
}

func (s *Shell) cmdTxDis(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: tx-dis <location> <on|off>")
		return
	}

	var value bool
	switch strings.ToLower(args[1]) {
	case "on", "true", "1":
		value = true
	case "off", "false", "0":
		value = false
	default:
		fmt.Fprintf(s.rl.Stdout(), "Invalid value: %s (want on or off)\n", args[1])
		return
	}

	m := s.moduleAt(args[0])
	if m == nil {
		fmt.Fprintf(s.rl.Stdout(), "No module at location %s\n", args[0])
		return
	}
	n := m.FSM().NetIf()
	if n == nil {
		fmt.Fprintln(s.rl.Stdout(), "Module has no netif")
		return
	}

	err := s.platform.SetAttribute(n.ID(), tai.AttributeValue{
		ID:    tai.NetworkIfAttrTxDis,
		Value: value,
	})
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v (status %s)\n", err, tai.StatusOf(err))
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "tx-dis = %v\n", value)
}

func (s *Shell) cmdTransit(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: transit <location> <state>")
		return
	}

	m := s.moduleAt(args[0])
	if m == nil {
		fmt.Fprintf(s.rl.Stdout(), "No module at location %s\n", args[0])
		return
	}

	state, ok := parseState(args[1])
	if !ok {
		fmt.Fprintf(s.rl.Stdout(), "Unknown state: %s\n", args[1])
		return
	}

	m.FSM().Transit(state)
	fmt.Fprintf(s.rl.Stdout(), "Requested transition to %s\n", state)
}

func parseState(name string) (fsm.State, bool) {
	switch strings.ToUpper(name) {
	case "INIT":
		return fsm.StateInit, true
	case "WAITING_CONFIGURATION", "WAITING":
		return fsm.StateWaitingConfiguration, true
	case "READY":
		return fsm.StateReady, true
	case "END":
		return fsm.StateEnd, true
	}
	return 0, false
}
