package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/canonjson/internal/codec"
	"github.com/mcncl/canonjson/internal/config"
	"github.com/mcncl/canonjson/internal/errors"
	"github.com/mcncl/canonjson/internal/jsonwrap"
	"github.com/mcncl/canonjson/internal/message"
	"github.com/sirupsen/logrus"
)

// CLI defines the command-line interface
var CLI struct {
	Input      string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output     string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Config     string `help:"Path to config file. Defaults to the nearest .canonjson.yml." short:"c" type:"path"`
	ParseDates bool   `help:"Recognize ISO-8601 dates and datetimes in values and object keys." short:"D" name:"parse-dates"`
	Path       string `help:"Dotted path to render instead of the whole document, e.g. users.0.name." short:"p"`
	Envelope   bool   `help:"Wrap the result in a message envelope." short:"e"`
	Indent     string `help:"Indent output with this string instead of rendering compact text."`
	Debug      bool   `help:"Enable debug logging." short:"d"`
	Version    bool   `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Log    *logrus.Logger
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("canonjson"),
		kong.Description("Decode JSON with exact numbers and optional date recognition, and render it canonically"),
		kong.UsageOnError(),
	)

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		parser.FatalIfErrorf(err)
	}

	if CLI.Version {
		fmt.Printf("canonjson version %s\n", Version)
		return
	}

	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg, err := config.LoadConfigWithCLI(configPath, config.CLIOverrides{
		ParseDates: CLI.ParseDates,
		Envelope:   CLI.Envelope,
		Indent:     CLI.Indent,
		Debug:      CLI.Debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(errors.NewConfigError(err.Error(), err)))
		os.Exit(1)
	}

	if err := run(newContext(cfg)); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: canonjson --help\n")
		os.Exit(1)
	}
}

// newContext builds the runtime context and its logger from cfg
func newContext(cfg *config.Config) *Context {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	if cfg.Dev.Debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return &Context{Debug: cfg.Dev.Debug, Config: cfg, Log: log}
}

// run executes the main program logic
func run(ctx *Context) error {
	opts := codec.Options{ParseDates: ctx.Config.Decode.ParseDates, Logger: ctx.Log}

	// 1. Decode JSON input
	doc, err := parseInput(opts)
	if err != nil {
		return err
	}
	ctx.Log.WithField("kind", doc.Kind()).Debug("decoded input")

	// 2. Navigate to the requested path
	if CLI.Path != "" {
		doc, err = doc.Path(CLI.Path)
		if err != nil {
			return err
		}
		ctx.Log.WithField("path", CLI.Path).Debug("selected path")
	}

	// 3. Wrap in an envelope if requested
	if ctx.Config.Envelope.Enabled {
		msg := &message.Message{Type: ctx.Config.Envelope.Type, Data: doc}
		doc, err = msg.ToWrappedJSON()
		if err != nil {
			return err
		}
		ctx.Log.WithField("type", msg.Type).Debug("wrapped in envelope")
	}

	// 4. Render
	text, err := render(doc, ctx.Config.Render)
	if err != nil {
		return err
	}

	// 5. Output the result
	return writeOutput(text)
}

// render produces the output text. The canonical settings go through the
// wrapper's cached rendering.
func render(doc *jsonwrap.JSON, cfg config.RenderConfig) (string, error) {
	if cfg.SortKeys && cfg.Indent == "" {
		return doc.Render()
	}
	return codec.EncodeIndent(doc.Data(), cfg.SortKeys, cfg.Indent)
}

// parseInput reads JSON from file or stdin
func parseInput(opts codec.Options) (*jsonwrap.JSON, error) {
	if CLI.Input != "" {
		data, err := codec.DecodeFile(CLI.Input, opts)
		if err != nil {
			return nil, err
		}
		return jsonwrap.Wrap(data, opts), nil
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return nil, errors.NewInputError("failed to access stdin", err)
	}
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, errors.NewInputError("failed to read from stdin", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return jsonwrap.NewWithOptions(data, opts)
}

// writeOutput writes text to file or stdout
func writeOutput(text string) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(text+"\n"), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		return nil
	}

	if _, err := fmt.Println(text); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}
