// Package notifier provides a topic registry and webhook-to-chat relay for Go,
// backed by a SQL store and delivering through the Telegram Bot API.
//
// Users register named topics and receive an unguessable token per topic.
// External services POST to /<token> on the webhook server and the payload is
// relayed to the chat the topic is bound to. Possession of the token is the
// only credential needed to publish.
//
// Works both as a library for embedding in your application AND as a
// standalone server binary (cmd/notifier-server) that runs the webhook
// ingress alongside a Telegram command front-end.
//
// # Features
//
//   - Capability tokens: 128-bit random identifiers, collision-checked at
//     insert with a bounded regenerate-and-retry loop
//   - Per-owner topic names, enforced with a store-level unique index so
//     racing registrations cannot create duplicates
//   - Repository Pattern for clean data access abstraction
//   - Options Pattern service construction
//   - Pluggable architecture: bring your own Logger, TokenGenerator and
//     DeliveryGateway
//   - Multi-Database Support: MySQL, PostgreSQL, SQLite via Relica adapters
//   - Embedded Migrations for easy database setup
//   - Cloud Native: 12-factor app, ENV config, health checks
//
// # Quick Start
//
// Apply the embedded migrations and wire the registry:
//
//	import (
//	    "database/sql"
//	    "github.com/coregx/notifier"
//	    "github.com/coregx/notifier/adapters/relica"
//	    _ "github.com/mattn/go-sqlite3"
//	)
//
//	db, _ := sql.Open("sqlite3", "notifier.db")
//	if err := notifier.ApplyMigrations(context.Background(), db); err != nil {
//	    log.Fatal(err)
//	}
//
//	registry, err := notifier.NewRegistry(
//	    notifier.WithRegistryRepository(relica.NewTopicRepository(db, "sqlite3")),
//	    notifier.WithRegistryLogger(logger),
//	)
//
// Register a topic and resolve it on inbound delivery:
//
//	topic, err := registry.Register(ctx, notifier.RegisterRequest{
//	    OwnerID: 42,
//	    Name:    "alerts",
//	    ChatID:  -100123456,
//	})
//	// topic.Token is the webhook path segment
//
//	topic, err = registry.Resolve(ctx, token)
//	if notifier.IsNoData(err) {
//	    // unknown token, respond 404
//	}
//
// The standalone server is configured entirely via environment variables;
// see cmd/notifier-server.
package notifier
