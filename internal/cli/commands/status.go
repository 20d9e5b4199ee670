package commands

import (
	"context"
	"fmt"

	"TripKeeper/internal/config"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Показать состояние хранилища" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	s, done, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()

	snap := s.Snapshot()
	fmt.Fprintf(Out, "Database:     %s\n", cfg.DatabaseDSN)
	fmt.Fprintf(Out, "Media:        %s (%s)\n", cfg.MediaBackend, cfg.MediaDir)
	fmt.Fprintf(Out, "Trips:        %d\n", len(snap.Trips))
	fmt.Fprintf(Out, "Cards:        %d\n", len(snap.Cards))
	fmt.Fprintf(Out, "Reservations: %d\n", len(snap.Reservations))
	if trip, ok := s.ActiveTrip(); ok {
		fmt.Fprintf(Out, "Active trip:  %s (%s)\n", trip.Name, trip.ID)
	} else {
		fmt.Fprintln(Out, "Active trip:  -")
	}
	if s.PersistenceHealthy() {
		fmt.Fprintln(Out, "Persistence:  ok")
	} else {
		fmt.Fprintf(Out, "Persistence:  degraded (%v)\n", s.LastPersistError())
	}
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
