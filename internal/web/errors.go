package web

import "errors"

var (
	errUnknownCommand = errors.New("unknown command type")
	errUnknownGame    = errors.New("unknown game slug")
	errNoStarter      = errors.New("no starter has been drawn")
)
