package main

import (
	"fmt"
	"os"
	"strings"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch m := uiMode(strings.ToLower(strings.TrimSpace(value))); m {
	case "":
		return uiModeAuto, nil
	case uiModeAuto, uiModeOn, uiModeOff:
		return m, nil
	}
	return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// uiEnv is what the auto mode looks at.
type uiEnv struct {
	tty  bool   // stdout is a terminal
	term string // $TERM
	ci   bool   // $CI is set
}

func currentUIEnv() uiEnv {
	_, ci := os.LookupEnv("CI")
	return uiEnv{tty: isTerminal(os.Stdout), term: os.Getenv("TERM"), ci: ci}
}

// wantProgressUI decides whether fmt shows the progress view for a run over
// the given number of build files. In auto mode a single file, a dumb terminal or a CI job get
// plain output.
func wantProgressUI(mode uiMode, files int, env uiEnv) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	}
	return env.tty && !env.ci && env.term != "dumb" && files > 1
}
