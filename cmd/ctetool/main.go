package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/bodgit/cte"
	"github.com/bodgit/cte/batch"
	"github.com/bodgit/cte/catalog"
	"github.com/bodgit/cte/raster"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const defaultDB = "ctetool.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(c.App.ErrWriter)
	logger.SetLevel(logrus.WarnLevel)
	if c.Bool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func extract(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}
	input, output := c.Args().Get(0), c.Args().Get(1)

	fmt.Fprintf(c.App.Writer, "extracting the file %q to %q\n", input, output)

	f, err := os.Open(input)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer f.Close()

	m, err := cte.DecodeImage(f)
	if err != nil {
		return cli.Exit(fmt.Errorf("%s: %w", input, err), 1)
	}

	if err := raster.Save(output, m); err != nil {
		return cli.Exit(fmt.Errorf("%s: %w", output, err), 1)
	}

	fmt.Fprintln(c.App.Writer, "done")

	return nil
}

func encode(c *cli.Context) (err error) {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}
	input, output := c.Args().Get(0), c.Args().Get(1)

	format, err := cte.ParseFormat(c.String("format"))
	if err != nil {
		return cli.Exit(err, 1)
	}

	fmt.Fprintf(c.App.Writer, "encoding %q into %q (using the %s encoding)\n", input, output, format)

	m, err := raster.Load(input)
	if err != nil {
		return cli.Exit(fmt.Errorf("%s: %w", input, err), 1)
	}

	f, err := os.Create(output)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cli.Exit(cerr, 1)
		}
		if err != nil {
			os.Remove(output)
		}
	}()

	if err := cte.Encode(f, m, format); err != nil {
		return cli.Exit(fmt.Errorf("%s: %w", input, err), 1)
	}

	fmt.Fprintln(c.App.Writer, "done")

	return nil
}

func info(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	for _, file := range c.Args().Slice() {
		f, err := os.Open(file)
		if err != nil {
			return cli.Exit(err, 1)
		}

		h, err := cte.ReadHeader(f)
		f.Close()
		if err != nil {
			return cli.Exit(fmt.Errorf("%s: %w", file, err), 1)
		}

		fmt.Fprintf(c.App.Writer, "%s: %s, %dx%d, %d bits per pixel, pixel data at offset %d\n", file, h.Format, h.Width, h.Height, h.PixelBits, h.Offset)
	}

	return nil
}

func scan(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	db, err := catalog.New(c.String("db"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer db.Close()

	s, err := batch.New(db, newLogger(c), batch.Workers(c.Int("workers")), batch.Extension(c.String("ext")), batch.Overwrite(c.Bool("overwrite")))
	if err != nil {
		return cli.Exit(err, 1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := s.Scan(ctx, c.Args().First()); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func list(c *cli.Context) error {
	db, err := catalog.New(c.String("db"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer db.Close()

	textures, err := db.List()
	if err != nil {
		return cli.Exit(err, 1)
	}

	for _, t := range textures {
		fmt.Fprintf(c.App.Writer, "%016X %-4s %5dx%-5d %s\n", t.Hash, t.Format, t.Width, t.Height, t.Path)
	}

	return nil
}

func newApp(db string) *cli.App {
	app := cli.NewApp()

	app.Name = "ctetool"
	app.Usage = "Pokémon Super Mystery Dungeon CTE texture utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"CTETOOL_DB"},
			Value:   db,
			Usage:   "path to texture catalog",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "extract",
			Usage:     "Extract a CTE texture to an image",
			ArgsUsage: "CTE IMAGE",
			Description: "The format of IMAGE is determined by its extension, " +
				"PNG is recommended as it is lossless.",
			Action: extract,
		},
		{
			Name:      "encode",
			Usage:     "Encode an image to a CTE texture",
			ArgsUsage: "IMAGE CTE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "format",
					Value: cte.A8.String(),
					Usage: "pixel format of the texture",
				},
			},
			Action: encode,
		},
		{
			Name:      "info",
			Usage:     "Show the header of CTE textures",
			ArgsUsage: "CTE...",
			Action:    info,
		},
		{
			Name:      "scan",
			Usage:     "Extract every CTE texture under a directory and catalog them",
			ArgsUsage: "DIRECTORY",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "ext",
					Value: "png",
					Usage: "extension of the extracted images",
				},
				&cli.IntFlag{
					Name:  "workers",
					Value: 10,
					Usage: "number of textures converted concurrently",
				},
				&cli.BoolFlag{
					Name:  "overwrite",
					Usage: "replace previously extracted images",
				},
			},
			Action: scan,
		},
		{
			Name:   "list",
			Usage:  "List the textures in the catalog",
			Action: list,
		},
	}

	return app
}

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app := newApp(filepath.Join(cwd, defaultDB))

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
