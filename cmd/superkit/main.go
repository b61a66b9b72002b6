// Command superkit runs a SuperKit project and manages its apps.
package main

import (
	"context"
	"os"

	_ "github.com/GriffinCanCode/SuperKit/apps"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(exitCode(err, os.Stderr))
	}
}
