// localetrans translates i18n JSON locale files through web translation APIs.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/minios-linux/localetrans/config"
	"github.com/minios-linux/localetrans/i18n"
	"github.com/minios-linux/localetrans/langmeta"
	"github.com/minios-linux/localetrans/locale"
	"github.com/minios-linux/localetrans/lockfile"
	"github.com/minios-linux/localetrans/settings"
	"github.com/minios-linux/localetrans/translate"
	"github.com/minios-linux/localetrans/watch"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	infoTag    = color.New(color.FgBlue).Sprint("[INFO]")
	okTag      = color.New(color.FgGreen).Sprint("[OK]")
	warnTag    = color.New(color.Bold, color.FgYellow).Sprint("[WARN]")
	errorTag   = color.New(color.FgRed).Sprint("[ERROR]")
	headerText = color.New(color.FgBlue).SprintFunc()
	goodText   = color.New(color.FgGreen).SprintFunc()
	badText    = color.New(color.FgRed).SprintFunc()
)

// quiet suppresses everything but errors and the translated output.
var quiet bool

func logInfo(format string, args ...any) {
	if quiet {
		return
	}
	fmt.Fprintln(color.Error, infoTag, fmt.Sprintf(format, args...))
}

func logSuccess(format string, args ...any) {
	if quiet {
		return
	}
	fmt.Fprintln(color.Error, okTag, fmt.Sprintf(format, args...))
}

func logWarning(format string, args ...any) {
	if quiet {
		return
	}
	fmt.Fprintln(color.Error, warnTag, fmt.Sprintf(format, args...))
}

func logError(format string, args ...any) {
	fmt.Fprintln(color.Error, errorTag, fmt.Sprintf(format, args...))
}

// ---------------------------------------------------------------------------
// Global flag
// ---------------------------------------------------------------------------

var rootDir string

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "localetrans",
		Short: i18n.T("Translate i18n JSON locale files with web translation APIs"),
		Long: i18n.T(`localetrans translates nested i18n JSON locale files. Every string is sent
to a translation service; {{ placeholders }} are kept verbatim.

Commands:
  translate   Translate a locale file into one or more languages
  providers   List supported translation services
  auth        Manage stored API keys
  version     Show version information`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&rootDir, "root", ".", i18n.T("Project root directory (.localetrans.yaml, .env, locales/)"))

	root.AddCommand(
		newTranslateCmd(),
		newProvidersCmd(),
		newAuthCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logError("%v", err)
		stop()
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: i18n.T("Show version information"),
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "localetrans version %s\n", version)
			fmt.Fprintf(out, "  commit:    %s\n", commit)
			fmt.Fprintf(out, "  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// providers
// ---------------------------------------------------------------------------

func newProvidersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: i18n.T("List supported translation services"),
		Run: func(cmd *cobra.Command, args []string) {
			writeProviders(cmd.OutOrStdout())
		},
	}
}

func writeProviders(w io.Writer) {
	for _, d := range translate.Providers() {
		endpoint := d.URL
		if endpoint == "" {
			endpoint = i18n.T("(set with --url)")
		}
		marker := " "
		if d.ID == translate.DefaultProvider {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-15s %-15s %-4s %s\n", marker, d.ID, d.Name, d.Method, endpoint)
	}
}

// ---------------------------------------------------------------------------
// translate
// ---------------------------------------------------------------------------

type translateArgs struct {
	input, output, from, to string
	api, apiKey, url, proxy string
	quiet, noSpinner, watch bool
	keepValues, verbose     bool
	concurrency             int
	concurrencySet          bool
	interval, timeout       time.Duration
}

func newTranslateCmd() *cobra.Command {
	var a translateArgs

	cmd := &cobra.Command{
		Use:   "translate",
		Short: i18n.T("Translate a locale file"),
		Long: i18n.T(`Translate a nested JSON locale file into another language.

Without --input, the single locales/*.default.json file is used. Without
--from, the source language is the first part of the input file name
(en.default.json → en). Without --to, the target language is taken from the
--output file name. With neither --output nor --to, every language listed in
.localetrans.yaml is translated; without a languages list, every other
*.json locale next to the input is translated in place.

The provider is chosen from --api, the API environment variable (or .env),
.localetrans.yaml, and finally libretranslate.

Examples:
  # Translate to Spanish with LibreTranslate, print to stdout
  localetrans translate -i locales/en.json --to es

  # Write locales/de.json using Google
  localetrans translate --api google --api-key KEY -o locales/de.json

  # Keep translating on every change of the source file
  localetrans translate -o locales/fr.json --watch`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.concurrencySet = cmd.Flags().Changed("concurrency")
			return runTranslate(cmd.Context(), a, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.SetNormalizeFunc(dashedFlagNames)
	f.StringVarP(&a.input, "input", "i", "", i18n.T("Input locale file (default: locales/*.default.json)"))
	f.StringVarP(&a.output, "output", "o", "", i18n.T("Output file (default: stdout)"))
	f.StringVar(&a.from, "from", "", i18n.T("Source language (default: from input file name)"))
	f.StringVar(&a.to, "to", "", i18n.T("Target language (default: from output file name)"))

	f.StringVar(&a.api, "api", "", i18n.T("Translation provider (or API env var)"))
	f.StringVar(&a.apiKey, "api-key", "", i18n.T("API key (or API_KEY env var)"))
	f.StringVar(&a.url, "url", "", i18n.T("Override the API request URL (or API_URL env var)"))

	f.BoolVar(&a.quiet, "quiet", false, i18n.T("Do not output anything but errors to the console"))
	f.BoolVar(&a.noSpinner, "no-spinner", false, i18n.T("Do not show a progress bar"))
	f.BoolVar(&a.verbose, "verbose", false, i18n.T("Log every request and response"))

	f.BoolVar(&a.watch, "watch", false, i18n.T("Watch the input file for changes and re-translate"))
	f.DurationVar(&a.interval, "interval", watch.DefaultInterval, i18n.T("Polling interval for --watch"))

	f.IntVar(&a.concurrency, "concurrency", 1, i18n.T("Strings translated at once"))
	f.BoolVar(&a.keepValues, "keep-values", false, i18n.T("Copy numbers, booleans, arrays and nulls into the output"))

	f.DurationVar(&a.timeout, "timeout", 0, i18n.T("Request timeout (0 = 60s)"))
	f.StringVar(&a.proxy, "proxy", "", i18n.T("HTTP/HTTPS proxy URL"))

	_ = cmd.RegisterFlagCompletionFunc("api", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return providerCompletions(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runTranslate(ctx context.Context, a translateArgs, stdout io.Writer) error {
	quiet = a.quiet
	log := newLogger(a.verbose)
	defer func() { _ = log.Sync() }()

	env, err := config.LoadEnv(rootDir)
	if err != nil {
		return err
	}
	project, err := config.LoadProjectFile(rootDir)
	if err != nil {
		return err
	}
	s, err := config.Resolve(config.Flags{API: a.api, APIKey: a.apiKey, URL: a.url}, env, project, settings.Load())
	if err != nil {
		return err
	}
	log.Debug("resolved settings",
		zap.String("provider", s.Provider),
		zap.String("provider_source", string(s.ProviderSource)),
		zap.String("key_source", string(s.KeySource)),
		zap.String("url", s.URL))

	if a.input == "" && project.InputPath() == "" {
		logWarning(i18n.T("No input file provided, checking for %s"), filepath.Join(config.DefaultLocalesDir, "*.default.json"))
	}
	jobs, err := config.PlanJobs(rootDir, config.JobFlags{
		Input:  a.input,
		Output: a.output,
		From:   a.from,
		To:     a.to,
	}, project)
	if err != nil {
		return err
	}

	opts := translatorOptions(s, a, project, log)
	r := &runner{opts: opts, showBar: !a.quiet && !a.noSpinner, stdout: stdout}

	if !a.watch {
		return r.runAll(ctx, jobs)
	}

	input := jobs[0].Input
	lf, err := lockfile.Load(rootDir)
	if err != nil {
		return err
	}
	r.lock = lf
	log.Debug("lock file loaded", zap.String("path", lf.Path()), zap.String("targets", lf.Summary()))

	hash, err := lockfile.HashFile(input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", input, err)
	}
	if err := r.runChanged(ctx, jobs, hash); err != nil {
		return err
	}

	logInfo(i18n.T("Watching %s for changes"), input)
	w := &watch.Watcher{Path: input, Interval: a.interval, Log: log}
	err = w.Run(ctx, hash, func(ctx context.Context, hash string) error {
		if err := r.runChanged(ctx, jobs, hash); err != nil {
			logError("%v", err)
		}
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func translatorOptions(s config.Settings, a translateArgs, project *config.ProjectFile, log *zap.Logger) translate.Options {
	opts := translate.Options{
		Provider:       s.Provider,
		APIKey:         s.APIKey,
		URL:            s.URL,
		Concurrency:    a.concurrency,
		PreserveValues: a.keepValues,
		Timeout:        a.timeout,
		Proxy:          a.proxy,
		Logger:         log,
	}
	if project != nil {
		if !a.concurrencySet && project.Concurrency > 0 {
			opts.Concurrency = project.Concurrency
		}
		if project.KeepValues {
			opts.PreserveValues = true
		}
	}
	return opts
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// runner executes translation jobs with shared options.
type runner struct {
	opts    translate.Options
	showBar bool
	stdout  io.Writer
	lock    *lockfile.LockFile // nil outside watch mode
}

func (r *runner) runAll(ctx context.Context, jobs []config.Job) error {
	for _, job := range jobs {
		if err := r.run(ctx, job); err != nil {
			return err
		}
	}
	return nil
}

// runChanged translates every job whose output is missing or was produced
// from a different source checksum, then records hash in the lock file.
func (r *runner) runChanged(ctx context.Context, jobs []config.Job, hash string) error {
	var targets []string
	for _, job := range jobs {
		target := lockfile.TargetKey(job.Output)
		targets = append(targets, target)
		if job.Output != "" && fileExists(job.Output) && !r.lock.IsChanged(target, hash) {
			logInfo(i18n.T("%s is up to date"), job.Output)
			continue
		}
		if err := r.run(ctx, job); err != nil {
			r.lock.RemoveTarget(target)
			if serr := r.lock.Save(); serr != nil {
				logWarning(i18n.T("Could not save lock file: %v"), serr)
			}
			return err
		}
		r.lock.Update(target, hash)
	}
	r.lock.Clean(targets)
	if err := r.lock.Save(); err != nil {
		logWarning(i18n.T("Could not save lock file: %v"), err)
	}
	return nil
}

func (r *runner) run(ctx context.Context, job config.Job) error {
	if !langmeta.Valid(job.To) {
		logWarning(i18n.T("%q is not a known language code"), job.To)
	}
	logSuccess(i18n.T("Translating %s from %s to %s with %s"),
		job.Input, langmeta.Label(job.From), langmeta.Label(job.To), r.opts.Provider)

	tree, err := locale.ParseFile(job.Input)
	if err != nil {
		return err
	}

	opts := r.opts
	total := tree.CountStrings()
	var bar *progressbar.ProgressBar
	if r.showBar && total > 0 {
		bar = newProgressBar(total, job.To)
		opts.OnProgress = func(int, int) { _ = bar.Add(1) }
	}

	tr, err := translate.New(opts)
	if err != nil {
		return err
	}
	result, err := tr.Translate(ctx, tree, job.From, job.To)
	if bar != nil {
		if err != nil {
			_ = bar.Clear()
		} else {
			_ = bar.Finish()
		}
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", i18n.T("error translating locale file"), job.Input, err)
	}
	logSuccess(i18n.N("Translated %d string", "Translated %d strings", total), total)

	if job.Output == "" {
		data, err := locale.Marshal(result)
		if err != nil {
			return err
		}
		_, err = r.stdout.Write(data)
		return err
	}

	logInfo(i18n.T("Writing to %s"), job.Output)
	return locale.WriteFile(job.Output, result)
}

func newProgressBar(total int, lang string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan]%s[reset]", lang)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

// ---------------------------------------------------------------------------
// auth
// ---------------------------------------------------------------------------

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: i18n.T("Manage stored API keys"),
		Long: i18n.T(`Manage API keys and endpoint overrides stored per provider.

Stored keys are used when neither --api-key nor API_KEY is set.

Examples:
  localetrans auth set --provider google           Prompt for a Google API key
  localetrans auth set --provider custom --url URL Store a custom endpoint
  localetrans auth remove --provider google        Remove the Google key
  localetrans auth remove                          Remove everything
  localetrans auth list                            Show stored keys`),
	}

	cmd.AddCommand(
		newAuthSetCmd(),
		newAuthRemoveCmd(),
		newAuthListCmd(),
	)

	return cmd
}

func newAuthSetCmd() *cobra.Command {
	var provider, key, baseURL string

	cmd := &cobra.Command{
		Use:   "set",
		Short: i18n.T("Store an API key or endpoint for a provider"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := translate.Lookup(provider)
			if err != nil {
				return err
			}
			if baseURL != "" {
				if err := config.ValidateStruct(struct {
					URL string `validate:"url"`
				}{baseURL}); err != nil {
					return err
				}
				if err := settings.SetBaseURL(desc.ID, baseURL); err != nil {
					return err
				}
				logSuccess(i18n.T("%s endpoint saved"), desc.Name)
			}
			if key == "" && baseURL != "" {
				return nil
			}
			if key == "" {
				key, err = promptKey(cmd.InOrStdin(), desc.ID)
				if err != nil {
					return err
				}
				if key == "" {
					logInfo("%s", i18n.T("Keeping existing key"))
					return nil
				}
			}
			if err := settings.SetAPIKey(desc.ID, key); err != nil {
				return fmt.Errorf("saving API key: %w", err)
			}
			logSuccess(i18n.T("%s API key saved"), desc.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", i18n.T("Provider ID (required)"))
	cmd.Flags().StringVar(&key, "key", "", i18n.T("API key (prompted when omitted)"))
	cmd.Flags().StringVar(&baseURL, "url", "", i18n.T("Endpoint override"))
	_ = cmd.MarkFlagRequired("provider")
	_ = cmd.RegisterFlagCompletionFunc("provider", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return providerCompletions(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// promptKey reads one line from in. An empty answer with an existing key
// keeps it and returns "".
func promptKey(in io.Reader, providerID string) (string, error) {
	existing := settings.Load().APIKey(providerID)
	if existing != "" {
		fmt.Fprintf(color.Error, i18n.T("  Current key: %s\n"), settings.MaskKey(existing))
		fmt.Fprint(color.Error, i18n.T("  Enter new key to replace, or press Enter to keep: "))
	} else {
		fmt.Fprint(color.Error, i18n.T("  Enter API key: "))
	}

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return "", errors.New(i18n.T("no input received"))
	}
	key := strings.TrimSpace(scanner.Text())
	if key == "" && existing == "" {
		return "", errors.New(i18n.T("no API key provided"))
	}
	return key, nil
}

func newAuthRemoveCmd() *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:     "remove",
		Aliases: []string{"rm"},
		Short:   i18n.T("Remove stored credentials (all when --provider is omitted)"),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if provider == "" {
				if err := settings.RemoveAll(); err != nil {
					return err
				}
				logSuccess("%s", i18n.T("All stored credentials removed"))
				return nil
			}
			if _, err := translate.Lookup(provider); err != nil {
				return err
			}
			if err := settings.Remove(provider); err != nil {
				return fmt.Errorf("removing %s credentials: %w", provider, err)
			}
			logSuccess(i18n.T("%s credentials removed"), provider)
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", i18n.T("Provider to remove (default: all)"))
	_ = cmd.RegisterFlagCompletionFunc("provider", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return providerCompletions(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func newAuthListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   i18n.T("Show stored credentials"),
		Run: func(cmd *cobra.Command, args []string) {
			writeCredentials(cmd.OutOrStdout(), settings.Load(), os.Getenv(config.EnvAPIKey))
		},
	}
}

func writeCredentials(w io.Writer, store settings.Store, envKey string) {
	fmt.Fprintf(w, "\n%s\n", headerText(i18n.T("Stored Credentials")))
	fmt.Fprintln(w, strings.Repeat("─", 60))

	for _, d := range translate.Providers() {
		key, endpoint := store.APIKey(d.ID), store.BaseURL(d.ID)
		var status string
		switch {
		case key != "":
			status = fmt.Sprintf("%s (key: %s)", goodText(i18n.T("configured")), settings.MaskKey(key))
		case endpoint != "":
			status = fmt.Sprintf("%s (%s)", goodText(i18n.T("configured")), i18n.T("no key"))
		default:
			status = badText(i18n.T("not configured"))
		}
		fmt.Fprintf(w, "  %-15s %s\n", d.ID, status)
		if endpoint != "" {
			fmt.Fprintf(w, "  %15s endpoint: %s\n", "", endpoint)
		}
	}

	fmt.Fprintf(w, "\n  %s\n", headerText(i18n.T("Environment Variables")))
	if envKey != "" {
		fmt.Fprintf(w, "  %s: %s %s\n", config.EnvAPIKey, goodText(settings.MaskKey(envKey)), i18n.T("(overrides stored keys)"))
	} else {
		fmt.Fprintf(w, "  %s: %s\n", config.EnvAPIKey, badText(i18n.T("not set")))
	}
	fmt.Fprintf(w, "\n  %s\n\n", settings.FilePath())
}

// ---------------------------------------------------------------------------
// Shared helpers
// ---------------------------------------------------------------------------

// dashedFlagNames accepts --api_key as an alias of --api-key.
func dashedFlagNames(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func providerCompletions() []string {
	providers := translate.Providers()
	out := make([]string, 0, len(providers))
	for _, d := range providers {
		out = append(out, d.ID+"\t"+d.Name)
	}
	return out
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
