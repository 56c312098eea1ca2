package webserver

import "strings"

type Command int

const (
	CommandNone Command = iota
	CommandAuxOn
	CommandAuxOff
)

const (
	pathAuxOn  = "GET /wifi_on"
	pathAuxOff = "GET /wifi_off"
)

func (c Command) String() string {
	switch c {
	case CommandAuxOn:
		return "aux-on"
	case CommandAuxOff:
		return "aux-off"
	}
	return "none"
}

// ResolveCommand maps the request line to a command by plain substring match.
// Method, query and protocol version are otherwise ignored.
func ResolveCommand(requestLine string) Command {
	switch {
	case strings.Contains(requestLine, pathAuxOn):
		return CommandAuxOn
	case strings.Contains(requestLine, pathAuxOff):
		return CommandAuxOff
	}
	return CommandNone
}
