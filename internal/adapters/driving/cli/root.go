// Package cli provides the cobra command tree of the rulebook binary.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rulebook/internal/core/domain"
	"github.com/custodia-labs/rulebook/internal/core/ports/driven"
	"github.com/custodia-labs/rulebook/internal/core/ports/driving"
	"github.com/custodia-labs/rulebook/internal/logger"
)

// EnvVault names the environment variable used when --vault is not set.
const EnvVault = "RULEBOOK_VAULT"

// version is set by the build.
var version = "dev"

// Services holds everything the commands drive. Nil fields disable the
// commands that need them.
type Services struct {
	Taxonomy  driving.TaxonomyService
	Settings  driving.SettingsService
	Inserter  driving.InserterService
	Versions  driving.VersionService
	Export    driving.ExportService
	Backlinks driving.BacklinkService
	LinkIndex driving.LinkIndexService
	Actions   driving.ActionService
	Plugin    driving.Plugin
	Scheduler driving.Scheduler

	// Documents and Codec are driven ports the commands read through
	// directly: the active document and taxonomy import/export.
	Documents driven.DocumentStore
	Codec     driven.TaxonomyCodec

	// Selection opens the editor selection of a vault document.
	Selection func(path string) driven.SelectionProvider
}

// Options are the global flags handed to the bootstrap.
type Options struct {
	ConfigDir string
	VaultRoot string
	Ephemeral bool
	Verbose   bool
}

// Bootstrap builds the services for a command run. The returned close
// function releases databases and watchers.
type Bootstrap func(ctx context.Context, opts Options) (*Services, func() error, error)

var (
	taxonomyService  driving.TaxonomyService
	settingsService  driving.SettingsService
	inserterService  driving.InserterService
	versionService   driving.VersionService
	exportService    driving.ExportService
	backlinkService  driving.BacklinkService
	linkIndexService driving.LinkIndexService
	actionService    driving.ActionService
	pluginLifecycle  driving.Plugin
	scheduler        driving.Scheduler
	documentStore    driven.DocumentStore
	taxonomyCodec    driven.TaxonomyCodec
	openSelection    func(path string) driven.SelectionProvider

	bootstrap     Bootstrap
	closeServices func() error
	opts          Options
)

var rootCmd = &cobra.Command{
	Use:   "rulebook",
	Short: "Manage wargame rules in a markdown vault",
	Long: `Rulebook keeps a taxonomy of wargame rule categories, inserts rule
headers and combat blocks into vault documents, archives document versions,
exports rules to PDF, Markdown and plain text, and lists backlinks.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return teardown()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "print debug output to stderr")
	flags.StringVar(&opts.ConfigDir, "config-dir", "", "configuration directory (default ~/.rulebook)")
	flags.StringVar(&opts.VaultRoot, "vault", "", "vault directory (default $"+EnvVault+" or vault.root)")
	flags.BoolVar(&opts.Ephemeral, "ephemeral", false, "keep config and indexes in memory only")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap installs the function that builds services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs services directly, bypassing the bootstrap.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	taxonomyService = s.Taxonomy
	settingsService = s.Settings
	inserterService = s.Inserter
	versionService = s.Versions
	exportService = s.Export
	backlinkService = s.Backlinks
	linkIndexService = s.LinkIndex
	actionService = s.Actions
	pluginLifecycle = s.Plugin
	scheduler = s.Scheduler
	documentStore = s.Documents
	taxonomyCodec = s.Codec
	openSelection = s.Selection
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// Main runs the root command and maps errors to an exit code.
func Main(ctx context.Context) int {
	if err := Execute(ctx); err != nil {
		// PersistentPostRunE is skipped when a command fails.
		if closeErr := teardown(); closeErr != nil {
			logger.Warn("shutdown: %v", closeErr)
		}
		report(err)
		return 1
	}
	return 0
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(opts.Verbose)
	if opts.VaultRoot == "" {
		opts.VaultRoot = os.Getenv(EnvVault)
	}
	if bootstrap == nil || cmd.Annotations[annotationNoServices] == "true" {
		return nil
	}

	s, closer, err := bootstrap(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("starting rulebook: %w", err)
	}
	SetServices(s)
	closeServices = closer

	if pluginLifecycle != nil && cmd.Annotations[annotationBackground] == "true" {
		if err := pluginLifecycle.OnLoad(cmd.Context()); err != nil {
			return err
		}
	} else if taxonomyService != nil {
		if err := taxonomyService.Load(); err != nil {
			return fmt.Errorf("load taxonomy: %w", err)
		}
	}
	return nil
}

func teardown() error {
	var errs []error
	if pluginLifecycle != nil {
		if err := pluginLifecycle.OnUnload(context.Background()); err != nil {
			errs = append(errs, err)
		}
	}
	if closeServices != nil {
		if err := closeServices(); err != nil {
			errs = append(errs, err)
		}
		closeServices = nil
	}
	return errors.Join(errs...)
}

// Command annotations read by setup.
const (
	// annotationNoServices skips the bootstrap.
	annotationNoServices = "rulebook/no-services"

	// annotationBackground starts the plugin lifecycle, and with it the
	// scheduler, for long-running commands.
	annotationBackground = "rulebook/background"
)

var (
	noServices = map[string]string{annotationNoServices: "true"}
	background = map[string]string{annotationBackground: "true"}
)

// errNotConfigured reports a service that the bootstrap did not provide.
func errNotConfigured(name string) error {
	return fmt.Errorf("%s not configured", name)
}

// notice prints a user-visible notice.
func notice(cmd *cobra.Command, n domain.Notice) {
	cmd.Println(n.String())
}

// shownError is a failure whose notice the command already printed.
type shownError struct {
	err error
}

func (e *shownError) Error() string { return e.err.Error() }
func (e *shownError) Unwrap() error { return e.err }

// shown prints n and returns err marked as already shown, so Main does not
// repeat the notice.
func shown(cmd *cobra.Command, n domain.Notice, err error) error {
	notice(cmd, n)
	return &shownError{err: err}
}

// report logs a failed command. I/O failures always carry their cause;
// other notices are logged only when the command did not print them.
func report(err error) {
	var s *shownError
	printed := errors.As(err, &s)
	switch {
	case domain.IsIOError(err) && printed:
		logger.Error("%v", err)
	case domain.IsIOError(err):
		logger.Error("%s: %v", domain.NoticeFor(err), err)
	case !printed:
		logger.Error("%s", domain.NoticeFor(err))
	}
	logger.Debug("error detail: %v", err)
}
