package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"jobboard/board_service/configs"
	"jobboard/board_service/internal/board_server/repository"
	"jobboard/board_service/internal/board_server/service"
	"jobboard/board_service/internal/core"
	"jobboard/board_service/internal/docstore"
	"jobboard/board_service/internal/domain/models"
	"jobboard/board_service/internal/sampledata"
	"jobboard/board_service/internal/stats"
	"jobboard/shared/config"
)

// openStore загружает окружение и открывает хранилище документов со схемой
func openStore(ctx context.Context, cmd *cli.Command) (docstore.Store, func() error, error) {
	if err := os.Setenv("ENV_FILE", cmd.String("env")); err != nil {
		return nil, nil, err
	}
	if err := configs.LoadEnv(); err != nil {
		return nil, nil, err
	}
	storage, err := configs.LoadStorageConfig()
	if err != nil {
		return nil, nil, err
	}
	return core.OpenStore(ctx, storage, true)
}

func migrateAction(ctx context.Context, cmd *cli.Command) error {
	if err := os.Setenv("ENV_FILE", cmd.String("env")); err != nil {
		return err
	}
	if err := configs.LoadEnv(); err != nil {
		return err
	}
	storage, err := configs.LoadStorageConfig()
	if err != nil {
		return err
	}
	if storage.Driver != configs.DriverPostgres {
		return fmt.Errorf("migrate needs DOCSTORE_DRIVER=%s, got %q", configs.DriverPostgres, storage.Driver)
	}

	_, closeStore, err := core.OpenStore(ctx, storage, true)
	if err != nil {
		return err
	}
	defer closeStore()

	fmt.Println("document store schema is up to date")
	return nil
}

func seedAction(ctx context.Context, cmd *cli.Command) error {
	store, closeStore, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	res, err := sampledata.Seed(ctx, store, time.Now())
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	fmt.Printf("seeded %s\n", res)
	return nil
}

func statsAction(ctx context.Context, cmd *cli.Command) error {
	store, closeStore, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	statsConf, err := config.LoadYAMLConfig(os.Getenv("STATS_CONFIG_PATH"), configs.UseDefaultStatsConfig)
	if err != nil {
		return fmt.Errorf("stats config: %w", err)
	}
	if err := statsConf.Validate(); err != nil {
		return err
	}
	loc, err := statsConf.Location()
	if err != nil {
		return err
	}

	repo, err := repository.NewBoardRepository(store)
	if err != nil {
		return err
	}

	engine := stats.NewEngine(repo, sampledata.StatsSource{}, loc, nil)
	dashboard := service.NewDashboardService(engine, statsConf, nil)

	ident := models.Identity{Role: models.RoleAdmin, CompanyID: cmd.String("company")}
	d, err := dashboard.Dashboard(ctx, ident, int(cmd.Int("days")), int(cmd.Int("top")))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
