package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/fx"

	"github.com/plumechat/plume/internal/app"
	"github.com/plumechat/plume/internal/profile"
)

func main() {
	profileFlag := flag.String("profile", "", "profile name (overrides config default)")
	flag.Parse()

	name := profile.Resolve(*profileFlag)
	if err := profile.ValidateName(name); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fx.New(
		app.Module(app.Params{ProfileName: name}),
	).Run()
}
