package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/conneroisu/manualkit/internal/config"
	"github.com/conneroisu/manualkit/internal/content"
	"github.com/conneroisu/manualkit/internal/errors"
	"github.com/conneroisu/manualkit/internal/lint"
	"github.com/conneroisu/manualkit/internal/logging"
	"github.com/conneroisu/manualkit/internal/registry"
	"github.com/conneroisu/manualkit/internal/renderer"
	"github.com/conneroisu/manualkit/internal/theme"
)

// session is what every command needs: configuration, a logger and the
// loaded manual.
type session struct {
	cfg      *config.Config
	logger   logging.Logger
	theme    *theme.Registry
	loaded   *content.Result
	findings *errors.ErrorCollector
}

func (s *session) registry() *registry.Registry {
	return s.loaded.Registry
}

// openManual loads configuration and content. Load findings are kept on the
// session; only IO and configuration failures are returned.
func openManual(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.WrapConfig(err, errors.ErrCodeConfigInvalid, "failed to load config")
	}
	logger := cfg.Logger()
	ctx := commandContext(cmd)

	loader := content.NewLoader(content.Options{
		Paths:          cfg.Content.Paths,
		NavigationFile: cfg.Content.NavigationFile,
		Exclude:        cfg.Content.ExcludePatterns,
	}, logger)
	loaded, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	findings := errors.NewErrorCollector()
	findings.Merge(loaded.Findings)
	return &session{
		cfg:      cfg,
		logger:   logger,
		theme:    theme.New(),
		loaded:   loaded,
		findings: findings,
	}, nil
}

// lint runs the linter and adds its findings to the session.
func (s *session) lint(ctx context.Context, strict bool) *errors.ErrorCollector {
	linter := lint.New(lint.Options{
		NavigationFile: s.cfg.Content.NavigationFile,
		Orphans:        s.cfg.Lint.Orphans,
		Strict:         strict,
	}, s.logger)
	s.findings.Merge(linter.Lint(ctx, s.registry()))
	return s.findings
}

func (s *session) htmlRenderer() *renderer.Renderer {
	return renderer.New(renderer.Options{
		Theme:       s.theme,
		Sections:    s.registry(),
		LinkPattern: s.cfg.Output.LinkPattern,
		MermaidURL:  s.cfg.Output.MermaidURL,
		Stylesheet:  s.cfg.Output.Stylesheet,
		ManualTitle: s.cfg.Output.Title,
		Logger:      s.logger,
	})
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
