// Package main is the entrypoint of the gnome-wallpaper command.
package main

import "github.com/MatthiasKunnen/gnome-wallpaper/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
