package app

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/launchpad-ai/launchpad/internal/bus"
	"github.com/launchpad-ai/launchpad/internal/logx"
	"github.com/launchpad-ai/launchpad/internal/runtime"
	"golang.org/x/sync/errgroup"

	"github.com/launchpad-ai/launchpad/internal/agent"
	"github.com/launchpad-ai/launchpad/internal/config"
	"github.com/launchpad-ai/launchpad/internal/llm"
	"github.com/launchpad-ai/launchpad/internal/queue"
	"github.com/launchpad-ai/launchpad/internal/storage"
	"github.com/launchpad-ai/launchpad/internal/store"
	"github.com/launchpad-ai/launchpad/internal/ui"
)

type App struct {
	cfg    *config.Config
	env    *config.EnvVars
	bus    *bus.Bus
	ui     *ui.UIStore
	agents []agent.Agent
	llm    llm.LLMClient
	st     store.Store
	pub    *queue.Publisher
	http   *HTTPServer
}

func New() (*App, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadFromDir("definitions")
	if err != nil {
		return nil, err
	}

	uiStore := ui.NewUIStore()
	messageBus := bus.New()

	llmClient, err := llm.FromEnv(context.Background(), env, cfg)
	if err != nil {
		return nil, err
	}

	st, pinger, err := buildStore(env)
	if err != nil {
		return nil, err
	}

	docStore := buildDocStore(env)
	pub := buildQueue(env)

	rt := &runtime.Runtime{
		SpecsLoaded: true,
		LLMClient:   llmClient,
		DB:          pinger,
	}

	// Crear todos los agentes
	apiAgent := agent.NewAPIAgent(messageBus, env, st, docStore, pub, uiStore)
	intake := agent.NewIntake(messageBus, uiStore)
	copilot := agent.NewCopilot(messageBus, env, st, llmClient, uiStore)
	analyst := agent.NewSkillAnalyst(messageBus, cfg, st, llmClient, uiStore)
	planner := agent.NewCareerPlanner(messageBus, cfg, st, llmClient, uiStore)
	writer := agent.NewDocWriter(messageBus, st, docStore, llmClient, uiStore)
	scout := agent.NewJobScout(messageBus, cfg, llmClient, uiStore)

	// Registrar subscripciones
	messageBus.Subscribe("api", apiAgent.Inbox())
	messageBus.Subscribe("intake", intake.Inbox())
	messageBus.Subscribe("copilot", copilot.Inbox())
	messageBus.Subscribe("skills", analyst.Inbox())
	messageBus.Subscribe("career", planner.Inbox())
	messageBus.Subscribe("docs", writer.Inbox())
	messageBus.Subscribe("jobs", scout.Inbox())

	httpServer := NewHTTPServer(env, apiAgent, uiStore, rt)

	return &App{
		cfg:    cfg,
		env:    env,
		bus:    messageBus,
		ui:     uiStore,
		agents: []agent.Agent{apiAgent, intake, copilot, analyst, planner, writer, scout},
		llm:    llmClient,
		st:     st,
		pub:    pub,
		http:   httpServer,
	}, nil
}

// buildStore abre Postgres si hay DB_URL; si no, todo vive en memoria.
func buildStore(env *config.EnvVars) (store.Store, runtime.Pinger, error) {
	if env.DBURL == "" {
		logx.Info("App", "DB_URL vacío, usando store en memoria")
		return store.NewMem(), nil, nil
	}

	pg, err := store.OpenPostgres(env.DBURL)
	if err != nil {
		return nil, nil, err
	}
	return pg, pg, nil
}

// buildDocStore es opcional: sin S3_BUCKET los documentos solo viajan en la respuesta.
func buildDocStore(env *config.EnvVars) *storage.DocStore {
	if env.S3Bucket == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ds, err := storage.NewDocStore(ctx, env.AWSRegion, env.AWSAccessKeyID, env.AWSSecretAccessKey, env.S3Endpoint, env.S3Bucket)
	if err != nil {
		logx.Warn("App", "document store deshabilitado: %v", err)
		return nil
	}
	return ds
}

// buildQueue conecta con el broker del pipeline de currículums, si hay AMQP_URL.
func buildQueue(env *config.EnvVars) *queue.Publisher {
	if env.AMQPURL == "" {
		return nil
	}

	pub, err := queue.Dial(env.AMQPURL, env.ResumeQueue, env.UpdateExchange)
	if err != nil {
		logx.Warn("App", "resume queue deshabilitada: %v", err)
		return nil
	}
	return pub
}

func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	// Lanzar agentes
	for _, ag := range a.agents {
		agent := ag
		g.Go(func() error {
			return agent.Start(gctx)
		})
	}

	// Lanzar HTTP server
	g.Go(func() error {
		return a.http.Start(gctx)
	})

	logx.Info("App", "LaunchPad v0.1.0 started")

	err := g.Wait()
	a.close()
	return err
}

// close suelta las conexiones externas al parar.
func (a *App) close() {
	if a.pub != nil {
		if err := a.pub.Close(); err != nil {
			logx.Warn("App", "cerrando queue: %v", err)
		}
	}
	if c, ok := a.st.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logx.Warn("App", "cerrando store: %v", err)
		}
	}
}

// Handler expone el handler HTTP completo; lo usan los tests de extremo a extremo.
func (a *App) Handler() http.Handler {
	return a.http.srv.Handler
}

// StartAgents arranca solo los agentes, sin servidor HTTP. Devuelve la función
// de parada, que espera a que todos terminen.
func (a *App) StartAgents(ctx context.Context) func() {
	ctx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	for _, ag := range a.agents {
		agent := ag
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = agent.Start(ctx)
		}()
	}

	return func() {
		cancel()
		wg.Wait()
	}
}
