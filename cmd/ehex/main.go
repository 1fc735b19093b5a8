package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"text/tabwriter"

	"github.com/bodgit/ehex"
	"github.com/bodgit/ehex/ehex1"
	"github.com/bodgit/ehex/ehex2"
	"github.com/urfave/cli/v2"
)

const defaultDB = "ehex.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

// usage prints the help for the running command and returns an exit error.
func usage(c *cli.Context) error {
	if err := cli.ShowCommandHelp(c, c.Command.Name); err != nil {
		return err
	}
	return cli.NewExitError("", 1)
}

func intArgs(c *cli.Context, from int, names ...string) ([]int, error) {
	if c.NArg() < from+len(names) {
		return nil, usage(c)
	}
	v := make([]int, len(names))
	for i, name := range names {
		n, err := strconv.Atoi(c.Args().Get(from + i))
		if err != nil {
			return nil, cli.NewExitError(fmt.Sprintf("invalid %s %q", name, c.Args().Get(from+i)), 1)
		}
		v[i] = n
	}
	return v, nil
}

func openLibrary(c *cli.Context) (*ehex.Catalog, *ehex.Library, error) {
	logger, err := newLogger(c)
	if err != nil {
		return nil, nil, err
	}

	db, err := ehex.OpenCatalog(c.String("db"))
	if err != nil {
		return nil, nil, err
	}

	return db, ehex.New(db, logger), nil
}

func newApp() (*cli.App, error) {
	app := cli.NewApp()

	app.Name = "ehex"
	app.Usage = "EHEX pixel art image utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"EHEX_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to catalog database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
		&cli.StringFlag{
			Name:    "log-level",
			EnvVars: []string{"EHEX_LOG_LEVEL"},
			Value:   "info",
			Usage:   "log level (debug, info, warn, error)",
		},
		&cli.StringFlag{
			Name:    "log-format",
			EnvVars: []string{"EHEX_LOG_FORMAT"},
			Value:   "text",
			Usage:   "log format (text or json)",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "new",
			Usage:     "Create a blank image",
			ArgsUsage: "FILE WIDTH HEIGHT",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "v1",
					Usage: "create a first generation image",
				},
			},
			Action: func(c *cli.Context) error {
				size, err := intArgs(c, 1, "width", "height")
				if err != nil {
					return err
				}

				if c.Bool("v1") {
					if err := ehex.WriteFile(c.Args().First(), ehex1.New(size[0], size[1])); err != nil {
						return cli.NewExitError(err, 1)
					}
					return nil
				}

				logger, err := newLogger(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				e := ehex.NewEditor(logger)
				e.NewImage(size[0], size[1])
				if err := e.SaveToPath(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "info",
			Usage:     "Show the format and size of an image",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					return usage(c)
				}

				m, format, err := ehex.Open(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				fmt.Printf("%s: %s %dx%d\n", c.Args().First(), format, m.Width(), m.Height())

				return nil
			},
		},
		{
			Name:      "view",
			Usage:     "Draw an image as text",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					return usage(c)
				}

				m, _, err := ehex.Open(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				fmt.Print(ehex.Render(m))

				return nil
			},
		},
		{
			Name:      "paint",
			Usage:     "Paint a palette index into an image",
			ArgsUsage: "FILE X Y INDEX",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "brush",
					Value: 1,
					Usage: "brush size",
				},
			},
			Action: func(c *cli.Context) error {
				v, err := intArgs(c, 1, "x", "y", "index")
				if err != nil {
					return err
				}
				if v[2] < 0 || v[2] > ehex2.MaxIndex {
					return cli.NewExitError(ehex2.ErrInvalidIndex, 1)
				}

				logger, err := newLogger(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				e := ehex.NewEditor(logger)
				if err := e.LoadFromPath(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				e.PaintBrush(v[0], v[1], c.Int("brush"), uint8(v[2]))

				if !e.Dirty() {
					logger.Warn("Nothing painted")
					return nil
				}

				if err := e.SaveToPath(""); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "resize",
			Usage:     "Resize the canvas of an image",
			ArgsUsage: "FILE WIDTH HEIGHT",
			Action: func(c *cli.Context) error {
				size, err := intArgs(c, 1, "width", "height")
				if err != nil {
					return err
				}

				logger, err := newLogger(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				e := ehex.NewEditor(logger)
				if err := e.LoadFromPath(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				e.ResizeCanvas(size[0], size[1])

				if err := e.SaveToPath(""); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "convert",
			Usage:     "Convert a first generation image to the second generation",
			ArgsUsage: "SOURCE TARGET",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					return usage(c)
				}

				m, format, err := ehex.Open(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				src, ok := m.(*ehex1.Image)
				if !ok {
					return cli.NewExitError(fmt.Sprintf("%s is already %s", c.Args().Get(0), format), 1)
				}

				if err := ehex.WriteFile(c.Args().Get(1), ehex.ConvertV1(src)); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "import",
			Usage:     "Import a raster image",
			ArgsUsage: "SOURCE TARGET",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "v1",
					Usage: "create a first generation image",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					return usage(c)
				}

				var (
					m   ehex.Canvas
					err error
				)
				if c.Bool("v1") {
					m, err = ehex.ImportRasterV1(c.Args().Get(0))
				} else {
					m, err = ehex.ImportRaster(c.Args().Get(0))
				}
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := ehex.WriteFile(c.Args().Get(1), m); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "export",
			Usage:     "Export an image as PNG",
			ArgsUsage: "SOURCE TARGET",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "scale",
					Value: 8,
					Usage: "size in pixels of each cell",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					return usage(c)
				}

				m, _, err := ehex.Open(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := ehex.ExportRaster(c.Args().Get(1), m, c.Int("scale")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "catalog",
			Usage: "Manage the image catalog",
			Subcommands: []*cli.Command{
				{
					Name:      "add",
					Usage:     "Add an image to the catalog",
					ArgsUsage: "FILE [NAME]",
					Action: func(c *cli.Context) error {
						if c.NArg() < 1 {
							return usage(c)
						}

						name := filepath.Base(c.Args().First())
						if c.NArg() > 1 {
							name = c.Args().Get(1)
						}

						b, err := os.ReadFile(c.Args().First())
						if err != nil {
							return cli.NewExitError(err, 1)
						}

						db, err := ehex.OpenCatalog(c.String("db"))
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer db.Close()

						e, err := db.Add(name, b)
						if err != nil {
							return cli.NewExitError(err, 1)
						}

						fmt.Printf("%s %s\n", e.SHA1, e.Name)

						return nil
					},
				},
				{
					Name:      "get",
					Usage:     "Write a catalogued image to a file or standard output",
					ArgsUsage: "NAME [FILE]",
					Action: func(c *cli.Context) error {
						if c.NArg() < 1 {
							return usage(c)
						}

						db, err := ehex.OpenCatalog(c.String("db"))
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer db.Close()

						b, err := db.Get(c.Args().First())
						if err != nil {
							return cli.NewExitError(err, 1)
						}

						if c.NArg() < 2 {
							_, err = os.Stdout.Write(b)
						} else {
							err = os.WriteFile(c.Args().Get(1), b, 0o644)
						}
						if err != nil {
							return cli.NewExitError(err, 1)
						}

						return nil
					},
				},
				{
					Name:  "list",
					Usage: "List catalogued images",
					Action: func(c *cli.Context) error {
						db, err := ehex.OpenCatalog(c.String("db"))
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer db.Close()

						entries, err := db.List()
						if err != nil {
							return cli.NewExitError(err, 1)
						}

						w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, ' ', 0)
						for _, e := range entries {
							fmt.Fprintf(w, "%s\t%s\t%dx%d\t%s\n", e.Name, e.Format, e.Width, e.Height, e.SHA1)
						}

						return w.Flush()
					},
				},
				{
					Name:      "rm",
					Usage:     "Remove an image from the catalog",
					ArgsUsage: "NAME",
					Action: func(c *cli.Context) error {
						if c.NArg() < 1 {
							return usage(c)
						}

						db, err := ehex.OpenCatalog(c.String("db"))
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer db.Close()

						if err := db.Remove(c.Args().First()); err != nil {
							if errors.Is(err, ehex.ErrNotFound) {
								return cli.NewExitError(fmt.Sprintf("%s: not found", c.Args().First()), 1)
							}
							return cli.NewExitError(err, 1)
						}

						return nil
					},
				},
				{
					Name:      "index",
					Usage:     "Scan a directory and catalog every image in it",
					ArgsUsage: "DIRECTORY",
					Flags: []cli.Flag{
						&cli.IntFlag{
							Name:    "workers",
							EnvVars: []string{"EHEX_WORKERS"},
							Value:   runtime.NumCPU(),
							Usage:   "number of files to decode concurrently",
						},
					},
					Action: func(c *cli.Context) error {
						if c.NArg() < 1 {
							return usage(c)
						}

						db, l, err := openLibrary(c)
						if err != nil {
							return cli.NewExitError(err, 1)
						}
						defer db.Close()

						n, err := l.Index(c.Args().First(), c.Int("workers"))
						if err != nil {
							return cli.NewExitError(err, 1)
						}

						fmt.Printf("%d images indexed\n", n)

						return nil
					},
				},
			},
		},
	}

	return app, nil
}

func main() {
	app, err := newApp()
	if err != nil {
		log.Fatal(err)
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
