package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/hesusruiz/mjml/config"
	"github.com/hesusruiz/mjml/mjml"
)

// app holds what every command needs once the flags are read.
type app struct {
	cfg  *config.Config
	opts mjml.RenderOptions
	log  *zap.Logger
}

// setup builds the logger and the configuration from the command line.
func setup(c *cli.Context) (*app, error) {
	var z *zap.Logger
	var err error
	if c.Bool("debug") {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(c.String("config"), z)
	if err != nil {
		return nil, err
	}

	opts := cfg.RenderOptions()
	opts.Logger = z
	if c.Bool("no-comments") {
		opts.KeepComments = false
	}
	if origin := c.String("social-icon-origin"); origin != "" {
		opts.SocialIconOrigin = origin
	}
	if fonts := c.StringSlice("font"); len(fonts) > 0 {
		all := make(map[string]string, len(opts.Fonts)+len(fonts))
		for name, href := range opts.Fonts {
			all[name] = href
		}
		for _, f := range fonts {
			name, href, ok := strings.Cut(f, "=")
			if !ok || name == "" || href == "" {
				return nil, fmt.Errorf("invalid font %q, expected name=url", f)
			}
			all[name] = href
		}
		opts.Fonts = all
	}
	return &app{cfg: cfg, opts: opts, log: z}, nil
}

// inputs expands the arguments, which may be doublestar patterns, into
// the list of files to process.
func inputs(c *cli.Context) ([]string, error) {
	if !c.Args().Present() {
		return nil, errors.New("no input file provided")
	}
	var files []string
	for _, arg := range c.Args().Slice() {
		if !strings.ContainsAny(arg, "*?[{") {
			files = append(files, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("pattern %s: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("pattern %s matches no file", arg)
		}
		files = append(files, matches...)
	}
	return files, nil
}

// outputName replaces the extension of the input file.
func outputName(inputFileName, ext string) string {
	old := filepath.Ext(inputFileName)
	return strings.TrimSuffix(inputFileName, old) + ext
}

// renderFile converts one file and returns the HTML.
func (a *app) renderFile(inputFileName string) (string, error) {
	doc, err := mjml.ParseFile(inputFileName,
		mjml.WithLoader(a.cfg.Loader()),
		mjml.WithLogger(a.log))
	if err != nil {
		return "", err
	}
	return doc.Render(a.opts)
}

// print writes html to the standard output, highlighted on a terminal.
func (a *app) print(html string) error {
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return quick.Highlight(os.Stdout, html, "html", "terminal256", a.cfg.CodeStyle)
	}
	_, err := fmt.Fprint(os.Stdout, html)
	return err
}

// processWatch checks periodically if an input file (inputFileName) has been modified, and if so
// it processes the file and writes the result to the output file (outputFileName)
func (a *app) processWatch(inputFileName string, outputFileName string) error {
	sugar := a.log.Sugar()
	var oldTimestamp time.Time

	for {
		info, err := os.Stat(inputFileName)
		if err != nil {
			return err
		}
		if oldTimestamp.Before(info.ModTime()) {
			oldTimestamp = info.ModTime()
			sugar.Infow("processing", "input", inputFileName, "output", outputFileName)
			html, err := a.renderFile(inputFileName)
			if err != nil {
				// keep watching, the next save may fix it
				sugar.Errorw("render failed", "input", inputFileName, "error", err)
			} else if err := os.WriteFile(outputFileName, []byte(html), 0664); err != nil {
				return err
			}
		}

		time.Sleep(1 * time.Second)
	}
}

// render is the main entry point of the program
func render(c *cli.Context) error {
	a, err := setup(c)
	if err != nil {
		return err
	}
	sugar := a.log.Sugar()
	defer sugar.Sync()

	files, err := inputs(c)
	if err != nil {
		return err
	}

	outputFileName := c.String("output")
	if outputFileName != "" && len(files) > 1 {
		return errors.New("--output needs a single input file")
	}

	if c.Bool("watch") {
		if len(files) > 1 {
			return errors.New("--watch needs a single input file")
		}
		if outputFileName == "" {
			outputFileName = outputName(files[0], a.cfg.OutputExtension)
		}
		return a.processWatch(files[0], outputFileName)
	}

	dryrun := c.Bool("dryrun")
	var errs error
	for _, inputFileName := range files {
		html, err := a.renderFile(inputFileName)
		if err != nil {
			sugar.Errorw("render failed", "input", inputFileName, "error", err)
			errs = multierr.Append(errs, err)
			continue
		}

		switch {
		case dryrun:
			sugar.Infow("dry run", "input", inputFileName, "bytes", len(html))
		case c.Bool("stdout"):
			if err := a.print(html); err != nil {
				return err
			}
		default:
			out := outputFileName
			if out == "" {
				out = outputName(inputFileName, a.cfg.OutputExtension)
			}
			sugar.Debugw("writing", "input", inputFileName, "output", out)
			if err := os.WriteFile(out, []byte(html), 0664); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
	}
	return errs
}

// validate parses the inputs without rendering them.
func validate(c *cli.Context) error {
	a, err := setup(c)
	if err != nil {
		return err
	}
	sugar := a.log.Sugar()
	defer sugar.Sync()

	files, err := inputs(c)
	if err != nil {
		return err
	}
	var errs error
	for _, inputFileName := range files {
		if _, err := mjml.ParseFile(inputFileName, mjml.WithLoader(a.cfg.Loader()), mjml.WithLogger(a.log)); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		sugar.Infow("valid", "input", inputFileName)
	}
	for _, err := range multierr.Errors(errs) {
		fmt.Fprintln(os.Stderr, err)
	}
	if errs != nil {
		return cli.Exit(fmt.Sprintf("%d of %d files are invalid", len(multierr.Errors(errs)), len(files)), 1)
	}
	return nil
}

// tree prints the resolved component tree of a document as XML.
func tree(c *cli.Context) error {
	a, err := setup(c)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	files, err := inputs(c)
	if err != nil {
		return err
	}
	for _, inputFileName := range files {
		doc, err := mjml.ParseFile(inputFileName, mjml.WithLoader(a.cfg.Loader()), mjml.WithLogger(a.log))
		if err != nil {
			return err
		}
		if _, err := treeDocument(doc).WriteTo(os.Stdout); err != nil {
			return err
		}
	}
	return nil
}

func main() {

	commonFlags := []cli.Flag{
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
			Usage:   "run in debug mode",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "read settings from `FILE` (default is mjml/config.yaml in the XDG config dirs)",
		},
	}

	renderFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "write html to `FILE` (default is input file name with extension .html)",
		},
		&cli.BoolFlag{
			Name:    "dryrun",
			Aliases: []string{"n"},
			Usage:   "do not generate output file, just process input file",
		},
		&cli.BoolFlag{
			Name:    "watch",
			Aliases: []string{"w"},
			Usage:   "watch the file for changes",
		},
		&cli.BoolFlag{
			Name:  "stdout",
			Usage: "write html to the standard output",
		},
		&cli.BoolFlag{
			Name:  "no-comments",
			Usage: "remove the comments of the source from the output",
		},
		&cli.StringSliceFlag{
			Name:  "font",
			Usage: "register a font as `NAME=URL`, can be repeated",
		},
		&cli.StringFlag{
			Name:  "social-icon-origin",
			Usage: "base `URL` of the social network icons",
		},
	}

	app := &cli.App{
		Name:     "mjml",
		Version:  "v0.1.0",
		Compiled: time.Now(),
		Authors: []*cli.Author{
			{
				Name:  "Jesus Ruiz",
				Email: "hesus.ruiz@gmail.com",
			},
		},
		Usage:     "convert responsive email markup to email-safe HTML",
		UsageText: "mjml [options] INPUT_FILE...",
		Action:    render,
		Flags:     append(append([]cli.Flag{}, commonFlags...), renderFlags...),
		Commands: []*cli.Command{
			{
				Name:      "render",
				Usage:     "render documents to HTML",
				ArgsUsage: "INPUT_FILE...",
				Action:    render,
				Flags:     renderFlags,
			},
			{
				Name:      "tree",
				Usage:     "print the resolved component tree as XML",
				ArgsUsage: "INPUT_FILE...",
				Action:    tree,
			},
			{
				Name:      "validate",
				Usage:     "check documents without rendering them",
				ArgsUsage: "INPUT_FILE...",
				Action:    validate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

}
