package commands

import "github.com/urfave/cli/v2"

// DefaultList holds every command of the zohoreports binary.
var DefaultList []*cli.Command

// NewApp returns the zohoreports application.
func NewApp(version string) *cli.App {
	return &cli.App{
		Name:     "zohoreports",
		Usage:    "upload data to Zoho Reports",
		Version:  version,
		Commands: DefaultList,
	}
}
