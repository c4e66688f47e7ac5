package main

import (
	"os"
)

// @title        Bookshelf API
// @version      1.0
// @description  In-memory bookshelf service.
// @BasePath     /

var (
	GitCommit string
	GitTag    string
	BuildTime string
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
