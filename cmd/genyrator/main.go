// Command genyrator validates entity schema files and generates record
// packages from them.
//
//	genyrator generate --schema ./schema --target ./models
//	genyrator describe --schema ./schema
//	genyrator convert < document.json
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
