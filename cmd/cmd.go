// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// buildCommand creates a playlist from a file of video links
func buildCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "build",
		Aliases: []string{"b"},
		Usage:   "Create a YouTube playlist from a file of video links",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      "file",
				UsageText: "Path to the link file (defaults to config input.links_path)",
			},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "title",
				Aliases: []string{"t"},
				Usage:   "Playlist title",
			},
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "Playlist description",
			},
			&cli.StringFlag{
				Name:    "privacy",
				Aliases: []string{"p"},
				Usage:   "Playlist privacy: public, private or unlisted",
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Collect playlist metadata through an interactive form",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Parse the link file and show what would be added without calling the API",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the build result as JSON",
			},
		},
		Action: r.Build,
	}
}

// parseCommand extracts video IDs from a link file without building anything
func parseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "parse",
		Usage: "Extract video IDs from a link file",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      "file",
				UsageText: "Path to the link file (defaults to config input.links_path)",
			},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output parsed IDs as JSON",
			},
		},
		Action: r.Parse,
	}
}

// authCommand handles OAuth credential operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage YouTube OAuth credentials",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Run the browser authorization flow and store a token",
				Flags:  []cli.Flag{configFlag()},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Show the state of the stored credential",
				Flags:  []cli.Flag{configFlag()},
				Action: r.AuthStatus,
			},
		},
	}
}

// historyCommand inspects and exports past build runs
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Inspect past playlist builds",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recent builds, newest first",
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of runs to show",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:  "export",
				Usage: "Export build history to a file",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: json, csv or markdown",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				},
				Action: r.HistoryExport,
			},
		},
	}
}

// setupCommand initializes configuration and the history database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and the history database",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Create a config.toml from the embedded template",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize the history database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
		},
	}
}
