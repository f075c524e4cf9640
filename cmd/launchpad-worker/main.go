package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/launchpad-ai/launchpad/internal/config"
	"github.com/launchpad-ai/launchpad/internal/llm"
	"github.com/launchpad-ai/launchpad/internal/logx"
	"github.com/launchpad-ai/launchpad/internal/storage"
	"github.com/launchpad-ai/launchpad/internal/store"
	"github.com/launchpad-ai/launchpad/internal/worker"
)

// El worker no tiene modo degradado: sin broker, base de datos o bucket no
// puede hacer nada útil, así que cualquier hueco en el entorno es fatal.
func main() {
	_ = godotenv.Load()

	env, err := config.LoadEnv()
	if err != nil {
		log.Fatal("error loading environment: ", err)
	}
	if env.AMQPURL == "" {
		log.Fatal("empty AMQP_URL in environment")
	}
	if env.DBURL == "" {
		log.Fatal("empty DB_URL in environment")
	}
	if env.S3Bucket == "" {
		log.Fatal("empty S3_BUCKET in environment")
	}

	ctx := context.Background()

	st, err := store.OpenPostgres(env.DBURL)
	if err != nil {
		log.Fatal("error opening db: ", err)
	}
	defer st.Close()

	docs, err := storage.NewDocStore(ctx, env.AWSRegion, env.AWSAccessKeyID, env.AWSSecretAccessKey, env.S3Endpoint, env.S3Bucket)
	if err != nil {
		log.Fatal("error creating document store: ", err)
	}

	// sin definitions: los alias de Bedrock se resuelven con la tabla compilada
	client, err := llm.FromEnv(ctx, env, nil)
	if err != nil {
		log.Fatal("error building llm chain: ", err)
	}

	pool := &worker.Pool{
		AMQPURL:  env.AMQPURL,
		Queue:    env.ResumeQueue,
		Exchange: env.UpdateExchange,
		St:       st,
		Docs:     docs,
		LLM:      client,
	}

	logx.Info("Worker", "starting %d workers consumer pool", env.WorkerCount)
	pool.Start(env.WorkerCount)
}
