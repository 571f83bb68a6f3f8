package daemon

import (
	"fmt"
	"strconv"
	"strings"
)

// builtinPrefix marks commands handled by the window manager instead of the
// shell.
const builtinPrefix = "@"

type builtinKind int

const (
	builtinView builtinKind = iota
	builtinSend
	builtinClose
	builtinRelayout
	builtinQuit
)

type builtin struct {
	kind builtinKind
	tag  uint32
}

var builtinNames = map[string]builtinKind{
	"view":     builtinView,
	"send":     builtinSend,
	"close":    builtinClose,
	"relayout": builtinRelayout,
	"quit":     builtinQuit,
}

// parseBuiltin parses "@view 3" style commands. ok is false for commands
// meant for the shell.
func parseBuiltin(command string) (b builtin, ok bool, err error) {
	command = strings.TrimSpace(command)
	if !strings.HasPrefix(command, builtinPrefix) {
		return builtin{}, false, nil
	}
	fields := strings.Fields(strings.TrimPrefix(command, builtinPrefix))
	if len(fields) == 0 {
		return builtin{}, true, fmt.Errorf("empty built-in command %q", command)
	}
	kind, known := builtinNames[strings.ToLower(fields[0])]
	if !known {
		return builtin{}, true, fmt.Errorf("unknown built-in command %q", command)
	}
	b = builtin{kind: kind}

	switch kind {
	case builtinView, builtinSend:
		if len(fields) != 2 {
			return builtin{}, true, fmt.Errorf("%q expects a tag number", command)
		}
		n, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil || n == 0 {
			return builtin{}, true, fmt.Errorf("%q: tag must be a positive number", command)
		}
		b.tag = uint32(n)
	default:
		if len(fields) != 1 {
			return builtin{}, true, fmt.Errorf("%q takes no arguments", command)
		}
	}
	return b, true, nil
}

// runCommand handles a fired binding.
func (d *Dispatcher) runCommand(command string) {
	b, ok, err := parseBuiltin(command)
	if err != nil {
		d.logger.Warn("invalid command", "command", command, "error", err)
		return
	}
	if !ok {
		d.logger.Debug("running command", "command", command)
		d.executor.Invoke(command)
		return
	}

	switch b.kind {
	case builtinView:
		d.view(b.tag)
	case builtinSend:
		if id, ok := d.windowUnderPointer(); ok {
			d.sendToTag(id, b.tag)
		}
	case builtinClose:
		if id, ok := d.windowUnderPointer(); ok {
			if err := d.backend.CloseWindow(id); err != nil {
				d.logger.Warn("close window failed", "window_id", uint32(id), "error", err)
			}
		}
	case builtinRelayout:
		d.relayout()
	case builtinQuit:
		d.logger.Info("quit requested")
		d.quit = true
	}
}
