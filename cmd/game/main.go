// fbroids runs the asteroids simulation on a framebuffer display.
//
// Usage:
//
//	fbroids                  - Play on the configured display
//	fbroids play --ticks N   - Run N ticks and exit
//	fbroids probe            - Open the display and print its mode
//	fbroids config           - Print the default configuration
//
// Global flags:
//
//	--config <path>      - Config file (default: search ~/.fbroids, ./configs)
//	--display <backend>  - memory, term, tcell or fbdev
//	--seed <value>       - RNG seed (0 = seed from the clock)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file instead of stderr
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
