package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mickamy/ormmeta/example/model"
	"github.com/mickamy/ormmeta/internal/gen"
	"github.com/mickamy/ormmeta/meta"
)

func main() {
	dialectName := flag.String("dialect", "sqlite", "database dialect (mysql, postgres or sqlite)")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	dialect, err := gen.DialectByName(*dialectName)
	if err != nil {
		log.Fatal(err)
	}

	store := meta.NewStore(meta.WithLogger(logger))
	users, err := store.Load(&model.User{})
	if err != nil {
		log.Fatalf("load User: %v", err)
	}
	posts, err := store.Load(&model.Post{})
	if err != nil {
		log.Fatalf("load Post: %v", err)
	}

	fmt.Println("--- METADATA ---")
	for _, e := range store.Entities() {
		fmt.Printf("%s (%s)\n", e.Name(), e.TableName(nil))
		for _, p := range e.Properties() {
			fmt.Printf("  %-10s %-6s %-12s persisted=%t\n", p.Name, p.Kind, p.Type, p.IsPersisted())
		}
	}

	stmts, err := gen.Render([]*meta.EntityMetadata{users, posts}, gen.RenderOption{Dialect: dialect})
	if err != nil {
		log.Fatalf("render: %v", err)
	}
	fmt.Println("\n--- DDL ---")
	for _, s := range stmts {
		fmt.Println(s + ";")
	}

	if dialect != gen.SQLite {
		return
	}

	ctx := context.Background()
	db, err := sql.Open(gen.DriverName(dialect), ":memory:")
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(1)

	if err := gen.Apply(ctx, db, stmts); err != nil {
		log.Fatalf("apply: %v", err)
	}

	fmt.Println("\n--- INSERT ---")
	if _, err := db.ExecContext(ctx, `INSERT INTO users (name, email) VALUES (?, ?)`, "Alice", "alice@example.com"); err != nil {
		log.Fatalf("insert Alice: %v", err)
	}
	_, err = db.ExecContext(ctx, `INSERT INTO users (name, email) VALUES (?, ?)`, "Bob", "bob")
	fmt.Printf("Bob rejected by check: %v\n", err)
}
