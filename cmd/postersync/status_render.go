package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"postersync/internal/poster"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const statusIndent = "  "

func outcomeKind(outcome poster.Outcome) statusKind {
	switch outcome {
	case poster.OutcomeAlreadyCorrect, poster.OutcomeReselected, poster.OutcomeUploaded:
		return statusOK
	case poster.OutcomeMissing:
		return statusWarn
	case poster.OutcomeFailed:
		return statusError
	default:
		return statusInfo
	}
}

func renderStatusLine(kind statusKind, message string, colorize bool) string {
	line := statusIndent + message
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + line + ansiReset
		}
	}
	return line
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
