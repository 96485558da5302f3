// Package all registers all shell commands.
package all

import (
	// command providers register in init.
	_ "github.com/robotalks/rclink/pkg/cli/cmds/frame"
	_ "github.com/robotalks/rclink/pkg/cli/cmds/port"
)
