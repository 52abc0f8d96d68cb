package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	helpdesk "github.com/goliatone/go-helpdesk"
	"github.com/goliatone/go-router"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on process environment")
	}

	cfg := helpdesk.NewConfigFromEnv(helpdesk.WithIssuer("go-helpdesk"))
	if cfg.GetSigningKey() == "" {
		log.Fatal("AUTH_SECRET is required")
	}

	ctx := context.Background()

	db, err := openDatabase(ctx)
	if err != nil {
		log.Fatalf("database setup: %v", err)
	}

	repo := helpdesk.NewRepositoryManager(db)
	repo.MustValidate()

	sink := helpdesk.SinkFunc(func(_ context.Context, e helpdesk.Event) error {
		log.Printf("[%s] %s: %s %v", e.Severity, e.Category, e.Message, e.Metadata)
		return nil
	})

	tokens := helpdesk.NewTokenServiceFromConfig(cfg, nil)
	sessions := helpdesk.NewCookieSessionStore(cfg).WithSink(sink)
	resolver := helpdesk.NewCurrentUserResolver(sessions, tokens, repo.Users()).WithSink(sink)

	authActions := helpdesk.NewAuthActions(repo.Users(), tokens, sessions).WithSink(sink)
	ticketActions := helpdesk.NewTicketActions(repo.Tickets(), resolver).
		WithSink(sink).
		WithRevalidator(helpdesk.PathRevalidatorFunc(func(path string) {
			log.Printf("revalidate %s", path)
		}))

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			AppName: "go-helpdesk example",
		}))
	})

	helpdesk.RegisterRoutes(srv.Router(),
		helpdesk.WithAuthActions(authActions),
		helpdesk.WithTicketActions(ticketActions),
		helpdesk.WithResolver(resolver),
	)

	srv.Serve(":8572")

	WaitExitSignal()
}

func openDatabase(ctx context.Context) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, "file:helpdesk.db?cache=shared")
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	for _, model := range []any{(*helpdesk.User)(nil), (*helpdesk.Ticket)(nil)} {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func WaitExitSignal() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return <-quit
}
