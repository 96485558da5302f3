package sh

import (
	"encoding/json"
	"flag"
	"fmt"

	"github.com/abiosoft/ishell"
	"github.com/golang/glog"

	"github.com/robotalks/rclink/pkg/l0/sbus"
	"github.com/robotalks/rclink/pkg/l0/serial"
	"github.com/robotalks/rclink/pkg/l1/msgs"
	"github.com/robotalks/rclink/pkg/rc"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell  *ishell.Shell
	Serial *serial.Config
	Mapper rc.Mapper
}

const (
	shellKey = "$shell"
	prompt   = "sbus > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool

	commands []*ishell.Cmd
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *serial.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.New(),
		Serial: conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(prompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// FormatFrame prints a frame into a friendly string for display.
func FormatFrame(f *sbus.Frame) string {
	return fmt.Sprintf("%v ch17=%v ch18=%v frame_lost=%v failsafe=%v",
		f.Values(), f.Ch17, f.Ch18, f.FrameLost, f.Failsafe)
}

// FormatState prints a controller state into a friendly string for display.
func FormatState(s *rc.ControllerState) string {
	return fmt.Sprintf("left_thumb=(%s,%s) left_shoulder=%s left_trigger=%s right_thumb=(%s,%s) right_shoulder=%s right_trigger=%s",
		s.LeftThumb.X, s.LeftThumb.Y, s.LeftShoulder, s.LeftTrigger,
		s.RightThumb.X, s.RightThumb.Y, s.RightShoulder, s.RightTrigger)
}

// PrintFrame prints a decoded frame with its mapped state.
func (s *Shell) PrintFrame(c *ishell.Context, f *sbus.Frame) {
	state := s.Mapper.Map(&f.Channels)
	if s.OutputJSON {
		s.PrintJSON(c, msgs.NewRCState(f, &state))
		return
	}
	c.Println(FormatFrame(f))
	c.Println(FormatState(&state))
}

// PrintJSON prints v as JSON.
func (s *Shell) PrintJSON(c *ishell.Context, v interface{}) {
	out, err := json.Marshal(v)
	if err != nil {
		c.Err(err)
		return
	}
	c.Println(string(out))
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			glog.Exit(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	glog.Exit("command expected")
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(serial.NewConfig()).Run(flag.Args()...)
}
