package commands

import (
	"context"
	"fmt"
	"strings"

	"TripKeeper/internal/config"
	"TripKeeper/internal/model"
)

type resvAddCmd struct{}

func (resvAddCmd) Name() string        { return "resv-add" }
func (resvAddCmd) Description() string { return "Добавить бронирование в активную поездку" }
func (resvAddCmd) Usage() string {
	return "resv-add <flight|hotel|restaurant|activity|car|other> <confirmation> [<provider> [<date YYYY-MM-DD>]]"
}

func (resvAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 || len(args) > 4 {
		return ErrUsage
	}
	r := model.Reservation{
		Type:               model.ReservationType(strings.ToLower(args[0])),
		ConfirmationNumber: args[1],
	}
	if len(args) >= 3 {
		r.Provider = args[2]
	}
	if len(args) == 4 {
		d, err := parseDate(args[3])
		if err != nil {
			return err
		}
		r.Date = &d
	}

	s, done, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()
	trip, err := activeTrip(s)
	if err != nil {
		return err
	}
	created, err := s.AddReservation(trip.ID, r)
	if err = reportPersist(err); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Created reservation %s (%s %s) in %s\n", created.ID, created.Type, created.ConfirmationNumber, trip.Name)
	return nil
}

func init() { RegisterCmd(resvAddCmd{}) }
