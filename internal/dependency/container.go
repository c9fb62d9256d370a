// Package dependency wires the core huntboard services using go.uber.org/dig.
package dependency

import (
	"fmt"
	"path/filepath"

	"go.uber.org/dig"

	"github.com/huntboard/huntboard/internal/agent"
	"github.com/huntboard/huntboard/internal/config"
	"github.com/huntboard/huntboard/internal/feed"
	"github.com/huntboard/huntboard/internal/ops"
	"github.com/huntboard/huntboard/internal/providers"
	"github.com/huntboard/huntboard/internal/remind"
	"github.com/huntboard/huntboard/internal/schema"
	"github.com/huntboard/huntboard/internal/store"
	"github.com/huntboard/huntboard/internal/tools"
	"github.com/huntboard/huntboard/internal/toolschema"
)

// Container holds the resolved core service singletons. Callers use the
// typed getter methods; they never need to import dig directly.
type Container struct {
	provider   schema.LLMProvider
	registry   *tools.Registry
	dispatcher *tools.Dispatcher
	tracker    *ops.Tracker
	workflows  *agent.Workflows
	feedSrv    *feed.Server
	reminders  *remind.Service
}

func (c *Container) Provider() schema.LLMProvider  { return c.provider }
func (c *Container) Registry() *tools.Registry     { return c.registry }
func (c *Container) Dispatcher() *tools.Dispatcher { return c.dispatcher }
func (c *Container) Tracker() *ops.Tracker         { return c.tracker }
func (c *Container) Workflows() *agent.Workflows   { return c.workflows }
func (c *Container) FeedServer() *feed.Server      { return c.feedSrv }
func (c *Container) Reminders() *remind.Service    { return c.reminders }

// New builds and wires all core services from cfg.
func New(cfg *config.Config) (*Container, error) {
	d := dig.New()

	for _, provide := range []any{
		func() *config.Config { return cfg },
		newProvider,
		newCatalog,
		newStore,
		newRegistry,
		tools.NewDispatcher,
		ops.NewTracker,
		newSettings,
		agent.NewRunner,
		newPromptLoader,
		newWorkflows,
		feed.NewHub,
		newFeedServer,
		newReminders,
	} {
		if err := d.Provide(provide); err != nil {
			return nil, err
		}
	}

	var result *Container
	err := d.Invoke(func(
		provider schema.LLMProvider,
		registry *tools.Registry,
		dispatcher *tools.Dispatcher,
		tracker *ops.Tracker,
		workflows *agent.Workflows,
		feedSrv *feed.Server,
		reminders *remind.Service,
	) {
		result = &Container{
			provider:   provider,
			registry:   registry,
			dispatcher: dispatcher,
			tracker:    tracker,
			workflows:  workflows,
			feedSrv:    feedSrv,
			reminders:  reminders,
		}
	})
	return result, err
}

func newProvider(cfg *config.Config) (schema.LLMProvider, error) {
	if cfg.Provider.APIKey == "" {
		return nil, fmt.Errorf("no API key configured — edit %s", config.ConfigPath())
	}
	return providers.New(providers.Params{
		APIKey:       cfg.Provider.APIKey,
		APIBase:      cfg.Provider.APIBase,
		DefaultModel: cfg.Agents.Defaults.Model,
	}), nil
}

func newCatalog(cfg *config.Config) ([]toolschema.Descriptor, error) {
	return toolschema.LoadCatalog(cfg.Tools.CatalogPath)
}

func newStore(cfg *config.Config) (*store.Store, error) {
	return store.New(cfg.WorkspacePath())
}

func newRegistry(cfg *config.Config, catalog []toolschema.Descriptor, st *store.Store) (*tools.Registry, error) {
	return tools.BuildDefaultRegistry(catalog, st, cfg.Tools.Fetch.MaxChars)
}

func newSettings(cfg *config.Config) schema.AgentSettings {
	d := cfg.Agents.Defaults
	return schema.NewAgentSettings(d.Model, d.MaxToolIter, d.Temperature, d.MaxTokens)
}

func newPromptLoader(cfg *config.Config) *agent.PromptLoader {
	return agent.NewPromptLoader(cfg.WorkspacePath())
}

func newWorkflows(runner *agent.Runner, prompts *agent.PromptLoader, tracker *ops.Tracker, st *store.Store) *agent.Workflows {
	return agent.NewWorkflows(runner, prompts, tracker, st)
}

func newFeedServer(cfg *config.Config, tracker *ops.Tracker, hub *feed.Hub) *feed.Server {
	return feed.NewServer(tracker, hub, cfg.Feed.Host, cfg.Feed.Port)
}

func newReminders(cfg *config.Config) *remind.Service {
	return remind.NewService(filepath.Join(cfg.WorkspacePath(), "reminders.json"))
}
