package commands

import (
	"context"
	"fmt"
	"time"

	"TripKeeper/internal/config"
)

type tripsCmd struct{}

func (tripsCmd) Name() string        { return "trips" }
func (tripsCmd) Description() string { return "Показать все поездки (* — активная)" }
func (tripsCmd) Usage() string       { return "trips" }

func (tripsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	s, done, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()

	snap := s.Snapshot()
	if len(snap.Trips) == 0 {
		fmt.Fprintln(Out, "Нет поездок")
		return nil
	}
	for _, t := range snap.Trips {
		mark := " "
		if t.ID == snap.ActiveTripID {
			mark = "*"
		}
		fmt.Fprintf(Out, "%s %s  %s  %s  cards=%d  reservations=%d\n",
			mark, t.ID, t.Name, formatDates(t), len(snap.CardsForTrip(t.ID)), len(t.Reservations))
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(snap.Trips))
	return nil
}

type tripAddCmd struct{}

func (tripAddCmd) Name() string        { return "trip-add" }
func (tripAddCmd) Description() string { return "Создать поездку" }
func (tripAddCmd) Usage() string       { return "trip-add <name> [<start YYYY-MM-DD> [<end YYYY-MM-DD>]]" }

func (tripAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 3 {
		return ErrUsage
	}
	start := timeNow().UTC().Truncate(24 * time.Hour)
	if len(args) >= 2 {
		d, err := parseDate(args[1])
		if err != nil {
			return err
		}
		start = d
	}
	var end *time.Time
	if len(args) == 3 {
		d, err := parseDate(args[2])
		if err != nil {
			return err
		}
		end = &d
	}

	s, done, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()
	trip, err := s.CreateTrip(args[0], start, end)
	if err = reportPersist(err); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Created:")
	fmt.Fprintf(Out, "  id:    %s\n", trip.ID)
	fmt.Fprintf(Out, "  name:  %s\n", trip.Name)
	fmt.Fprintf(Out, "  dates: %s\n", formatDates(trip))
	return nil
}

type tripRmCmd struct{}

func (tripRmCmd) Name() string        { return "trip-rm" }
func (tripRmCmd) Description() string { return "Удалить поездку вместе с карточками и бронированиями" }
func (tripRmCmd) Usage() string       { return "trip-rm <trip-id>" }

func (tripRmCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return ErrUsage
	}
	s, done, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()
	trip, ok := s.Trip(args[0])
	if !ok {
		return fmt.Errorf("поездка %s не найдена", args[0])
	}
	cards := len(s.CardsForTrip(trip.ID))
	if err := reportPersist(s.DeleteTrip(trip.ID)); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Deleted %s (%s): cards=%d reservations=%d\n", trip.ID, trip.Name, cards, len(trip.Reservations))
	return nil
}

type useCmd struct{}

func (useCmd) Name() string        { return "use" }
func (useCmd) Description() string { return "Сделать поездку активной (\"-\" — сбросить)" }
func (useCmd) Usage() string       { return "use <trip-id>|-" }

func (useCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return ErrUsage
	}
	s, done, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()
	if args[0] == "-" {
		if err := reportPersist(s.ClearActiveTrip()); err != nil {
			return err
		}
		fmt.Fprintln(Out, "Активная поездка сброшена")
		return nil
	}
	trip, ok := s.Trip(args[0])
	if !ok {
		return fmt.Errorf("поездка %s не найдена", args[0])
	}
	if err := reportPersist(s.SetActiveTrip(trip.ID)); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Активная поездка: %s (%s)\n", trip.Name, trip.ID)
	return nil
}

func init() {
	RegisterCmd(tripsCmd{})
	RegisterCmd(tripAddCmd{})
	RegisterCmd(tripRmCmd{})
	RegisterCmd(useCmd{})
}
