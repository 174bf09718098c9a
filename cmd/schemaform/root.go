package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	schemaform "github.com/goliatone/go-schemaform"
	"github.com/goliatone/go-schemaform/pkg/i18n"
	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/orchestrator"
	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/store"
	"github.com/goliatone/go-schemaform/pkg/tui"
	"github.com/goliatone/go-schemaform/pkg/validation"
)

const (
	appName   = "schemaform"
	envPrefix = "SCHEMAFORM"
)

// app carries the per-invocation configuration shared by every command.
type app struct {
	v      *viper.Viper
	out    io.Writer
	errOut io.Writer
	logger *slog.Logger

	// driver overrides the interactive prompt driver in tests.
	driver tui.PromptDriver
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	return newApp(out, errOut).rootCmd()
}

func newApp(out, errOut io.Writer) *app {
	return &app{v: viper.New(), out: out, errOut: errOut}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Convert, fill and store flat JSON Schema forms",
		Long: `schemaform converts object schemas with flat, typed properties into ordered,
editable models, coerces raw form input into typed JSON values, and keeps
schemas in a local bbolt database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				fmt.Fprintf(a.errOut, "display help: %v\n", err)
			}
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default ./schemaform.yaml)")
	flags.String("locale", "", "message locale (en, zh-CN, ja, fr, ru)")
	flags.String("db", "", "schema database path")
	flags.Bool("debug", false, "enable debug logging")
	flags.Bool("strict", false, "reject unsupported schema keywords and validate coerced values")
	flags.Bool("http", false, "allow loading schemas over HTTP")
	flags.Duration("timeout", 10*time.Second, "HTTP request timeout")
	a.bindFlags(flags)

	root.AddCommand(
		a.keyCmd(),
		a.modelCmd(),
		a.schemaCmd(),
		a.coerceCmd(),
		a.fillCmd(),
		a.editCmd(),
		a.storeCmd(),
		a.openapiCmd(),
		a.validateCmd(),
	)

	root.SetOut(a.out)
	root.SetErr(a.errOut)
	return root
}

func (a *app) bindFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(flag *pflag.Flag) {
		_ = a.v.BindPFlag(flag.Name, flag)
	})
}

func (a *app) init() error {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if file := a.v.GetString("config"); file != "" {
		a.v.SetConfigFile(file)
	} else {
		a.v.SetConfigName(appName)
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			a.v.AddConfigPath(filepath.Join(dir, appName))
		}
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	level := slog.LevelWarn
	if a.v.GetBool("debug") {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))
	a.logger.Debug("configuration loaded", "config", a.v.ConfigFileUsed(), "locale", a.locale())
	return nil
}

func (a *app) locale() string {
	preferred := os.Getenv("LC_ALL")
	if preferred == "" {
		preferred = os.Getenv("LANG")
	}
	return i18n.ResolveLocale(a.v.GetString("locale"), preferred)
}

func (a *app) messages() i18n.MessageSource {
	return i18n.ForLocale(a.locale())
}

func (a *app) loader() schema.Loader {
	options := []schema.LoaderOption{schema.WithRequestTimeout(a.v.GetDuration("timeout"))}
	if a.v.GetBool("http") {
		options = append(options, schema.WithHTTPFallback(a.v.GetDuration("timeout")))
	}
	return schemaform.NewLoader(options...)
}

func (a *app) openStore() (*store.Store, error) {
	path := a.v.GetString("db")
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		dir = filepath.Join(dir, appName)
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
		path = filepath.Join(dir, "schemas.bolt")
	}
	return store.Open(path)
}

func (a *app) orchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	base := []orchestrator.Option{
		orchestrator.WithLoader(a.loader()),
		orchestrator.WithMessages(a.messages()),
		orchestrator.WithLogger(a.logger),
		orchestrator.WithStrict(a.v.GetBool("strict")),
	}
	return schemaform.NewOrchestrator(append(base, options...)...)
}

func (a *app) prompter() *tui.Prompter {
	options := []tui.Option{tui.WithMessages(a.messages())}
	if a.driver != nil {
		options = append(options, tui.WithPromptDriver(a.driver))
	} else {
		options = append(options, tui.WithPromptDriver(tui.NewSurveyDriver(a.out)))
	}
	return tui.New(options...)
}

func (a *app) printJSON(value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(a.out, string(data))
	return err
}

// reportErr prints every display message of err before returning it, so
// aggregated validation failures are shown in full.
func (a *app) reportErr(err error) error {
	if err == nil {
		return nil
	}
	display := validation.Wrap(err, a.messages())
	for _, msg := range validation.Messages(display) {
		fmt.Fprintln(a.errOut, msg)
	}
	return err
}

// run wraps a command body so every failure is reported before cobra sees it.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return a.reportErr(fn(cmd, args))
	}
}

func (a *app) loadModel(ctx context.Context, o *orchestrator.Orchestrator, raw string) (model.Model, error) {
	src, err := schema.ParseSource(raw)
	if err != nil {
		return model.Model{}, err
	}
	return o.LoadModel(ctx, src)
}
