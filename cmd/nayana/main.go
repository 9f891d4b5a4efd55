package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/ayusman/nayana/internal/cli"
)

func init() {
	// OpenCV windows and the system tray need the main OS thread.
	runtime.LockOSThread()
}

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
