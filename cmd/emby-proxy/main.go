package main

import "github.com/PiliPili-Team/emby-proxy-cli/internal/cli"

// version is set by goreleaser via ldflags
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.Execute()
}
