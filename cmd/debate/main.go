package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

func main() {
	a := &app{}
	if err := newRootCommand(a).Execute(); err != nil {
		reportError(a, err, os.Stderr)
		os.Exit(1)
	}
}

// reportError logs err through the app logger; before setup has built one it
// falls back to w.
func reportError(a *app, err error, w io.Writer) {
	if a.log == nil {
		fmt.Fprintln(w, "error:", err)
		return
	}
	a.log.Error("command failed", zap.Error(err))
	_ = a.log.Sync()
}
