package commands

import (
	"context"
	"fmt"

	"TripKeeper/internal/config"
	"TripKeeper/internal/seed"
)

type seedCmd struct{}

func (seedCmd) Name() string        { return "seed" }
func (seedCmd) Description() string { return "Создать демо-поездку, если поездок ещё нет" }
func (seedCmd) Usage() string       { return "seed" }

func (seedCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	s, done, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()
	seeded, err := seed.NewSeeder(s, Log).SeedIfNeeded()
	if err != nil {
		return err
	}
	if !seeded {
		fmt.Fprintln(Out, "Поездки уже есть, демо-данные не нужны")
		return nil
	}
	fmt.Fprintln(Out, "Демо-поездка создана")
	return nil
}

func init() { RegisterCmd(seedCmd{}) }
