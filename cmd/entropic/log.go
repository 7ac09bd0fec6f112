package main

import (
	"go.uber.org/zap"
)

type logger struct {
	*zap.SugaredLogger
}

// Logf logs progress messages, shown with the verbose flag
func (l logger) Logf(format string, a ...interface{}) {
	l.Debugf(format, a...)
}
