package main

import (
	"context"
	"embed"
	"io/fs"
	"os"

	"github.com/charmbracelet/fang"

	"studyfortress/internal/cli"
)

const version = "0.1.0"

//go:embed static/*
var embeddedStatic embed.FS

func main() {
	static, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		os.Exit(1)
	}
	if err := fang.Execute(
		context.Background(),
		cli.NewRootCmd(static),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
