package commands

import (
	"context"
	"fmt"
	"os"

	"TripKeeper/internal/config"
	"TripKeeper/internal/model"
)

type mediaAddCmd struct{}

func (mediaAddCmd) Name() string { return "media-add" }
func (mediaAddCmd) Description() string {
	return "Сохранить файл; cover — обложка активной поездки, photo — фото-карточка"
}
func (mediaAddCmd) Usage() string { return "media-add <file> [cover|photo]" }

func (mediaAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	mode := ""
	if len(args) == 2 {
		mode = args[1]
		if mode != "cover" && mode != "photo" {
			return ErrUsage
		}
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	s, done, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()

	var trip model.Trip
	if mode != "" {
		if trip, err = activeTrip(s); err != nil {
			return err
		}
	}
	m, err := s.StoreMedia(data)
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, "Stored:")
	fmt.Fprintf(Out, "  id:     %s\n", m.ID)
	fmt.Fprintf(Out, "  type:   %s\n", m.ContentType)
	fmt.Fprintf(Out, "  size:   %d\n", m.Size)
	fmt.Fprintf(Out, "  digest: %s\n", m.Digest)

	switch mode {
	case "cover":
		if err := reportPersist(s.SetTripCover(trip.ID, m.ID)); err != nil {
			return err
		}
		fmt.Fprintf(Out, "Cover of %s updated\n", trip.Name)
	case "photo":
		card, err := s.CreateCard(trip.ID, model.CardPhoto, timeNow().UTC(), nil, "", m.ID)
		if err = reportPersist(err); err != nil {
			return err
		}
		fmt.Fprintf(Out, "Created photo card %s in %s\n", card.ID, trip.Name)
	}
	return nil
}

func init() { RegisterCmd(mediaAddCmd{}) }
