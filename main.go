package main

import "github.com/tsimur87/YouTube-download-script-android/internal/cli"

func main() {
	cli.Main()
}
