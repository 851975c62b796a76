// Command cesr prints human-readable reports of CESR event streams.
//
//	cesr format [-color] [-nocolor] [-yaml] [-indent N] [-where EXPR] [files]
//	cesr summary [files]
//	cesr diff a b
//	cesr said [-key K] [-sections] file
//
// Files default to stdin, as does "-".
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	logging "github.com/ipfs/go-log/v2"
	"github.com/scott-cotton/cli"
)

var log = logging.Logger("cesr")

func main() {
	// Do not handle SIGPIPE, write errors are checked for EPIPE instead.
	signal.Ignore(syscall.SIGPIPE)

	// Display a stack trace on panic
	defer func() {
		if e := recover(); e != nil {
			fmt.Fprintf(os.Stderr, "%s: %s", e, debug.Stack())
			os.Exit(2)
		}
	}()

	cli.MainContext(context.Background(), MainCommand())
}
