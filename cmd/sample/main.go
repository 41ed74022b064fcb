// Command sample demonstrates the github.com/bjaus/bind framework with a
// small user API: one schema drives the HTTP server, the generated client,
// and the documentation.
//
// Run the server:
//
//	go run ./cmd/sample
//
// Print the documentation instead of serving:
//
//	go run ./cmd/sample -docs          (plain text)
//	go run ./cmd/sample -docs -yaml    (YAML)
//
// Then:
//
//	POST http://localhost:8080/user/create/7   body "alice"   creates a user
//	GET  http://localhost:8080/user/get?sort=true             lists users
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"sync"
	"time"

	"github.com/bjaus/bind"
)

// UserId identifies a user.
type UserId uint32

// Name is a user's display name.
type Name string

// User is one user record.
type User struct {
	ID   UserId `json:"id"`
	Name Name   `json:"name"`
}

func main() {
	docsFlag := flag.Bool("docs", false, "Print route documentation and exit")
	yamlFlag := flag.Bool("yaml", false, "Render documentation as YAML (requires -docs)")
	flag.Parse()

	api, err := newSchema()
	if err != nil {
		slog.Error("schema build failed", "err", err)
		os.Exit(1)
	}

	if *docsFlag {
		if err := printDocs(api, *yamlFlag); err != nil {
			slog.Error("doc rendering failed", "err", err)
			os.Exit(1)
		}
		return
	}

	store := newStore()
	table, err := bind.Bind(api,
		bind.Handle("user_create", store.create),
		bind.Handle("users_get", store.list),
	)
	if err != nil {
		slog.Error("binding failed", "err", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	srv := &http.Server{
		Addr:              ":8080",
		Handler:           table.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	slog.Info("starting server", "addr", srv.Addr)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "err", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "err", err)
		}
	}

	slog.Info("server stopped")
}

func newSchema() (*bind.API, error) {
	reg := bind.NewRegistry().
		MustRegister("UserId", bind.JSONType[UserId]("numeric user identifier")).
		MustRegister("Name", bind.JSONType[Name]("display name")).
		MustRegister("User", bind.JSONType[User]("a user record")).
		MustRegister("[]User", bind.JSONType[[]User]("a list of user records")).
		MustRegister("bool", bind.JSONType[bool]("true or false"))

	return bind.NewSchema(reg).
		Route(http.MethodPost, "/user/create/{id:UserId}", "User",
			bind.WithBody("Name"),
			bind.WithName("user_create"),
			bind.WithSummary("Create a user with the given id and name.")).
		Route(http.MethodGet, "/user/get", "[]User",
			bind.WithQuery("sort", "bool"),
			bind.WithName("users_get"),
			bind.WithSummary("List all users, optionally sorted by id.")).
		Build()
}

func printDocs(api *bind.API, asYAML bool) error {
	if asYAML {
		out, err := bind.RenderYAML(api)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	}
	return bind.WriteText(os.Stdout, api)
}

// store is an in-memory user store backing the sample handlers.
type store struct {
	mu    sync.Mutex
	users map[UserId]User
}

func newStore() *store {
	return &store{users: make(map[UserId]User)}
}

func (s *store) create(_ context.Context, id UserId, name Name) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[id]; exists {
		return User{}, fmt.Errorf("user %d already exists", id)
	}
	u := User{ID: id, Name: name}
	s.users[id] = u
	return u, nil
}

func (s *store) list(_ context.Context, sort bool) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	if sort {
		slices.SortFunc(users, func(a, b User) int {
			return int(a.ID) - int(b.ID)
		})
	}
	return users, nil
}
