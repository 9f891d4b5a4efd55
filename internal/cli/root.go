// Package cli defines the nayana command line.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ayusman/nayana/internal/config"
	"github.com/ayusman/nayana/internal/logging"
)

const version = "dev"

// options holds the root flags. Unset flags leave the config file values
// alone.
type options struct {
	configPath string
	verbose    bool
	camera     int
	headless   bool
	tray       bool
	listen     string
	db         string
	noJournal  bool
}

// NewRootCommand builds the nayana command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "nayana",
		Short: "Control the mouse pointer with your hand or eyes",
		Long: `Nayana tracks your hand and eyes through the webcam and turns them into
pointer actions: the index fingertip or iris moves the cursor, a pinch or
blink clicks, the middle finger on the thumb right-clicks and looking up or
down scrolls.

Keys in the preview window: h hand only, e eyes only, b both, q quit.`,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.DefaultPath(), "path to the INI config file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging, including per-frame gesture signals")
	flags.StringVar(&opts.db, "db", "", "session journal database path")
	flags.BoolVar(&opts.noJournal, "no-journal", false, "do not record sessions")

	local := cmd.Flags()
	local.IntVar(&opts.camera, "camera", 0, "camera device index")
	local.BoolVar(&opts.headless, "headless", false, "run without a preview window")
	local.BoolVar(&opts.tray, "tray", false, "show a system tray menu")
	local.StringVar(&opts.listen, "listen", "", "serve the monitoring API on this address (e.g. 'localhost:8765')")

	cmd.AddCommand(newSessionsCommand(opts))
	cmd.AddCommand(newConfigCommand(opts))

	return cmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// load reads the config file, applies flags that were set and configures
// logging.
func (o *options) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, err
	}
	o.apply(cmd, &cfg)

	if err := logging.Setup(cfg.Log.Level, o.verbose); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (o *options) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if changed("camera") {
		cfg.Camera.Device = o.camera
	}
	if changed("headless") {
		cfg.Display.Headless = o.headless
	}
	if changed("tray") {
		cfg.Display.Tray = o.tray
	}
	if changed("listen") {
		cfg.Server.Listen = o.listen
	}
	if changed("db") {
		cfg.Store.Path = o.db
	}
	if o.noJournal {
		cfg.Store.Path = ""
	}
}

// printJSON writes data as indented JSON.
func printJSON(w io.Writer, data interface{}) error {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
