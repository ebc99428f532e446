package main

import (
	"os"

	"github.com/Alia5/autoremap/internal/config"
	"github.com/Alia5/autoremap/internal/log"
)

func main() {
	var cli config.CLI
	parser, err := config.NewParser(&cli, config.UserConfigPath(os.Args[1:]))
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	sinks, err := cli.Log.Open(os.Stdout, os.Stderr)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() { _ = sinks.Close() }()

	ctx.Bind(sinks.Logger)
	ctx.BindTo(sinks.Transcript, (*log.TranscriptLogger)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}
