package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/launchpad-ai/launchpad/internal/config"
	"github.com/launchpad-ai/launchpad/internal/llm"
	"github.com/launchpad-ai/launchpad/internal/queue"
	"github.com/launchpad-ai/launchpad/internal/storage"
	"github.com/launchpad-ai/launchpad/internal/store"
)

// doctor valida el entorno igual que haría el arranque, pero informando en vez
// de arrancar: proveedores LLM, base de datos, bucket y broker. Las piezas
// opcionales sin configurar salen como aviso, no como fallo. Devuelve el
// código de salida del proceso.
func doctor(w io.Writer) int {
	fmt.Fprintln(w, "🚀 LaunchPad environment check")

	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(w, "❌ environment: %v\n", err)
		return 1
	}
	fmt.Fprintln(w, "✅ environment loaded")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	ok := true

	fmt.Fprintf(w, "\n🧠 LLM providers (%s)\n", env.LLMProviders)
	client, err := llm.FromEnv(ctx, env, nil)
	if err != nil {
		fmt.Fprintf(w, "❌ chain: %v\n", err)
		ok = false
	} else if err := client.Ping(ctx); err != nil {
		fmt.Fprintf(w, "❌ ping: %v\n", err)
		ok = false
	} else {
		fmt.Fprintln(w, "✅ at least one provider is answering")
	}

	fmt.Fprintln(w, "\n🗄  Database")
	if env.DBURL == "" {
		fmt.Fprintln(w, "⚠️  DB_URL not set, the API will run on the in-memory store")
	} else if pg, err := store.OpenPostgres(env.DBURL); err != nil {
		fmt.Fprintf(w, "❌ open: %v\n", err)
		ok = false
	} else {
		if err := pg.Ping(ctx); err != nil {
			fmt.Fprintf(w, "❌ ping: %v\n", err)
			ok = false
		} else {
			fmt.Fprintln(w, "✅ postgres is reachable")
		}
		pg.Close()
	}

	fmt.Fprintln(w, "\n📦 Document bucket")
	if env.S3Bucket == "" {
		fmt.Fprintln(w, "⚠️  S3_BUCKET not set, generated documents will not be archived")
	} else if ds, err := storage.NewDocStore(ctx, env.AWSRegion, env.AWSAccessKeyID, env.AWSSecretAccessKey, env.S3Endpoint, env.S3Bucket); err != nil {
		fmt.Fprintf(w, "❌ client: %v\n", err)
		ok = false
	} else if err := ds.Ping(ctx); err != nil {
		fmt.Fprintf(w, "❌ bucket %s: %v\n", env.S3Bucket, err)
		ok = false
	} else {
		fmt.Fprintf(w, "✅ bucket %s is reachable\n", env.S3Bucket)
	}

	fmt.Fprintln(w, "\n📮 Resume broker")
	if env.AMQPURL == "" {
		fmt.Fprintln(w, "⚠️  AMQP_URL not set, resume uploads will be rejected")
	} else if pub, err := queue.Dial(env.AMQPURL, env.ResumeQueue, env.UpdateExchange); err != nil {
		fmt.Fprintf(w, "❌ dial: %v\n", err)
		ok = false
	} else {
		pub.Close()
		fmt.Fprintln(w, "✅ broker is reachable")
	}

	fmt.Fprintln(w)
	if !ok {
		fmt.Fprintln(w, "❌ some checks failed, fix the environment before deploying")
		return 1
	}
	fmt.Fprintln(w, "🎉 all checks passed")
	return 0
}
