package cli

import "github.com/thediveo/enumflag/v2"

// logLevelFlag is the --log-level enum.
type logLevelFlag enumflag.Flag

const (
	logLevelInfo logLevelFlag = iota
	logLevelDebug
	logLevelWarn
	logLevelError
)

var logLevelIds = map[logLevelFlag][]string{
	logLevelInfo:  {"info"},
	logLevelDebug: {"debug"},
	logLevelWarn:  {"warn", "warning"},
	logLevelError: {"error"},
}

// logFormatFlag is the --log-format enum.
type logFormatFlag enumflag.Flag

const (
	logFormatText logFormatFlag = iota
	logFormatJSON
	logFormatAuto
)

var logFormatIds = map[logFormatFlag][]string{
	logFormatText: {"text"},
	logFormatJSON: {"json"},
	logFormatAuto: {"auto"},
}

func (l logLevelFlag) String() string  { return logLevelIds[l][0] }
func (f logFormatFlag) String() string { return logFormatIds[f][0] }
