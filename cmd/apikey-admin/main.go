package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"warranty-register.backend/internal/config"
	"warranty-register.backend/internal/domain/entities"
	"warranty-register.backend/internal/infrastructure/repositories"
	"warranty-register.backend/internal/usecases"
)

var openApiKeyAdminDB = func(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}), &gorm.Config{PrepareStmt: false})
}

var openApiKeyAdminSQLDB = func(db *gorm.DB) (io.Closer, error) {
	return db.DB()
}

// apiKeyAdminRuntime is the slice of ApiKeyUsecase the CLI needs
type apiKeyAdminRuntime interface {
	IssueKey(ctx context.Context, input *entities.CreateApiKeyInput) (*entities.CreateApiKeyResponse, error)
	List(ctx context.Context, includeInactive bool) ([]*entities.ApiKey, error)
	Activate(ctx context.Context, id uint) (*entities.ApiKey, error)
	Deactivate(ctx context.Context, id uint) (*entities.ApiKey, error)
	Delete(ctx context.Context, id uint) (*entities.ApiKey, error)
}

type apiKeyAdminDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	prepare func(cfg *config.Config) (apiKeyAdminRuntime, io.Closer, error)
	out     io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultApiKeyAdminDeps() apiKeyAdminDeps {
	return apiKeyAdminDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (apiKeyAdminRuntime, io.Closer, error) {
			db, err := openApiKeyAdminDB(cfg.Database.URL())
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}

			sqlDB, err := openApiKeyAdminSQLDB(db)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}

			apiKeyRepo := repositories.NewApiKeyRepository(db)
			return usecases.NewApiKeyUsecase(apiKeyRepo), sqlDB, nil
		},
		out: os.Stdout,
	}
}

func runApiKeyAdmin(args []string, deps apiKeyAdminDeps) error {
	if deps.loadEnv == nil {
		deps.loadEnv = func() error { return godotenv.Load() }
	}
	if deps.loadCfg == nil {
		deps.loadCfg = config.Load
	}
	if deps.prepare == nil {
		deps.prepare = defaultApiKeyAdminDeps().prepare
	}
	if deps.out == nil {
		deps.out = os.Stdout
	}

	fs := flag.NewFlagSet("apikey-admin", flag.ContinueOnError)
	fs.SetOutput(deps.out)
	generateFlag := fs.Bool("generate", false, "issue a new API key")
	nameFlag := fs.String("name", "", "key display name (required with -generate)")
	expiresDaysFlag := fs.Int("expires-days", 0, "days until expiry, 0 means never")
	listFlag := fs.Bool("list", false, "list API keys")
	includeInactiveFlag := fs.Bool("include-inactive", false, "include deactivated keys in the listing")
	activateFlag := fs.Uint("activate", 0, "re-enable the key with this id")
	deactivateFlag := fs.Uint("deactivate", 0, "disable the key with this id")
	deleteFlag := fs.Uint("delete", 0, "soft-delete the key with this id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := deps.loadCfg()
	runtime, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	ctx := context.Background()

	switch {
	case *generateFlag:
		return generateKey(ctx, runtime, deps.out, *nameFlag, *expiresDaysFlag)
	case *listFlag:
		return listKeys(ctx, runtime, deps.out, *includeInactiveFlag)
	case *activateFlag != 0:
		key, err := runtime.Activate(ctx, uint(*activateFlag))
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(deps.out, "key %d (%s) activated\n", key.ID, key.Name)
		return nil
	case *deactivateFlag != 0:
		key, err := runtime.Deactivate(ctx, uint(*deactivateFlag))
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(deps.out, "key %d (%s) deactivated\n", key.ID, key.Name)
		return nil
	case *deleteFlag != 0:
		key, err := runtime.Delete(ctx, uint(*deleteFlag))
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(deps.out, "key %d (%s) deleted\n", key.ID, key.Name)
		return nil
	default:
		fs.Usage()
		return fmt.Errorf("one of -generate, -list, -activate, -deactivate or -delete is required")
	}
}

func generateKey(ctx context.Context, runtime apiKeyAdminRuntime, out io.Writer, name string, expiresDays int) error {
	if name == "" {
		return fmt.Errorf("-name is required with -generate")
	}

	input := &entities.CreateApiKeyInput{Name: name}
	if expiresDays != 0 {
		input.ExpiresDays = &expiresDays
	}

	resp, err := runtime.IssueKey(ctx, input)
	if err != nil {
		return fmt.Errorf("failed issuing api key: %w", err)
	}

	_, _ = fmt.Fprintln(out, "Issued API key; the plaintext below is shown once and cannot be recovered")
	_, _ = fmt.Fprintf(out, "id=%d\n", resp.ID)
	_, _ = fmt.Fprintf(out, "name=%s\n", resp.Name)
	if resp.ExpiresAt != nil {
		_, _ = fmt.Fprintf(out, "expires_at=%s\n", resp.ExpiresAt.Format(time.RFC3339))
	}
	_, _ = fmt.Fprintf(out, "API_KEY=%s\n", resp.ApiKey)
	return nil
}

func listKeys(ctx context.Context, runtime apiKeyAdminRuntime, out io.Writer, includeInactive bool) error {
	keys, err := runtime.List(ctx, includeInactive)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "%-6s %-30s %-8s %-20s %s\n", "ID", "NAME", "ACTIVE", "LAST_USED", "EXPIRES")
	for _, key := range keys {
		lastUsed := "never"
		if key.LastUsedAt != nil {
			lastUsed = key.LastUsedAt.Format(time.RFC3339)
		}
		expires := "never"
		if key.ExpiresAt != nil {
			expires = key.ExpiresAt.Format(time.RFC3339)
		}
		_, _ = fmt.Fprintf(out, "%-6d %-30s %-8t %-20s %s\n", key.ID, key.Name, key.IsActive, lastUsed, expires)
	}
	return nil
}

func main() {
	if err := runApiKeyAdmin(os.Args[1:], defaultApiKeyAdminDeps()); err != nil {
		log.Fatal(err)
	}
}
