package commands

import (
	"context"
	"fmt"
	"strings"

	"TripKeeper/internal/config"
	"TripKeeper/internal/model"
)

type cardsCmd struct{}

func (cardsCmd) Name() string        { return "cards" }
func (cardsCmd) Description() string { return "Показать карточки поездки (по умолчанию активной)" }
func (cardsCmd) Usage() string       { return "cards [<trip-id>]" }

func (cardsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}
	s, done, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()

	var trip model.Trip
	if len(args) == 1 {
		var ok bool
		if trip, ok = s.Trip(args[0]); !ok {
			return fmt.Errorf("поездка %s не найдена", args[0])
		}
	} else if trip, err = activeTrip(s); err != nil {
		return err
	}

	cards := s.CardsForTrip(trip.ID)
	fmt.Fprintf(Out, "%s (%s)\n", trip.Name, trip.ID)
	if len(cards) == 0 {
		fmt.Fprintln(Out, "Нет карточек")
		return nil
	}
	for _, c := range cards {
		line := fmt.Sprintf("- %s  %-5s  %s", c.ID, c.Kind, c.TakenAt.Format("2006-01-02 15:04"))
		if len(c.Tags) > 0 {
			line += "  #" + strings.Join(c.Tags, " #")
		}
		if c.Text != "" {
			line += "  " + c.Text
		}
		if c.MediaID != "" {
			line += "  [media " + c.MediaID + "]"
		}
		fmt.Fprintln(Out, line)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(cards))
	return nil
}

type cardAddCmd struct{}

func (cardAddCmd) Name() string        { return "card-add" }
func (cardAddCmd) Description() string { return "Добавить карточку в активную поездку" }
func (cardAddCmd) Usage() string       { return "card-add <photo|note|audio> [<text> [<tag,tag,...>]]" }

func (cardAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 3 {
		return ErrUsage
	}
	kind := model.CardKind(strings.ToLower(args[0]))
	var text string
	var tags []string
	if len(args) >= 2 {
		text = args[1]
	}
	if len(args) == 3 {
		tags = splitTags(args[2])
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
	card, err := s.CreateCard(trip.ID, kind, timeNow().UTC(), tags, text, "")
	if err = reportPersist(err); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Created card %s (%s) in %s\n", card.ID, card.Kind, trip.Name)
	return nil
}

type cardRmCmd struct{}

func (cardRmCmd) Name() string        { return "card-rm" }
func (cardRmCmd) Description() string { return "Удалить карточку" }
func (cardRmCmd) Usage() string       { return "card-rm <card-id>" }

func (cardRmCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return ErrUsage
	}
	s, done, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()
	before := len(s.Cards())
	if err := reportPersist(s.DeleteCard(args[0])); err != nil {
		return err
	}
	if len(s.Cards()) == before {
		return fmt.Errorf("карточка %s не найдена", args[0])
	}
	fmt.Fprintf(Out, "Deleted card %s\n", args[0])
	return nil
}

func init() {
	RegisterCmd(cardsCmd{})
	RegisterCmd(cardAddCmd{})
	RegisterCmd(cardRmCmd{})
}
