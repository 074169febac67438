package feed

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-phonebook/internal/config"
	"github.com/tartampluch/go-phonebook/internal/phonebook"
)

// ImportStats summarizes a vCard import.
type ImportStats struct {
	Processed     int // cards decoded
	Imported      int // distinct names produced; a repeated name keeps the last card
	SkippedCards  int // cards without a name or a valid phone, or undecodable
	SkippedValues int // TEL/BDAY values rejected by validation
}

// telURIPrefix is stripped from vCard 4.0 TEL values of type uri.
const telURIPrefix = "tel:"

// WriteVCards encodes one vCard 4.0 per record.
func WriteVCards(w io.Writer, records []*phonebook.Record) error {
	enc := vcard.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(toCard(r)); err != nil {
			return fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
	}
	return nil
}

func toCard(r *phonebook.Record) vcard.Card {
	card := make(vcard.Card)
	card.SetValue(vcard.FieldFormattedName, r.Name())
	card.SetName(&vcard.Name{GivenName: r.Name()})
	for _, p := range r.Phones() {
		card.AddValue(vcard.FieldTelephone, p.String())
	}
	if b, ok := r.Birthday(); ok {
		card.SetValue(vcard.FieldBirthday, b.Date().Format(config.DateFormatVCard))
	}
	vcard.ToV4(card)
	return card
}

// ReadVCards decodes a vCard stream into records.
// Every phone and birthday goes through the validating constructors; values
// that fail are dropped and counted. Malformed cards are skipped so that one
// bad entry does not abort the whole import.
func ReadVCards(r io.Reader) ([]*phonebook.Record, ImportStats, error) {
	log := slog.With(config.LogKeyComponent, config.CompFeed)
	dec := vcard.NewDecoder(r)

	var (
		stats   ImportStats
		records []*phonebook.Record
		index   = make(map[string]int)
	)
	for {
		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// The decoder cannot resynchronize after a syntax error.
			if stats.Processed == 0 {
				return nil, stats, fmt.Errorf("%s: %w", config.ErrVCardDecode, err)
			}
			log.Warn(config.MsgSkippedCard, config.LogKeyError, err)
			stats.SkippedCards++
			break
		}
		stats.Processed++

		rec, skipped := fromCard(card, log)
		stats.SkippedValues += skipped
		if rec == nil {
			stats.SkippedCards++
			continue
		}
		// A repeated name replaces the earlier card, as AddRecord would.
		if i, ok := index[rec.Name()]; ok {
			records[i] = rec
			continue
		}
		index[rec.Name()] = len(records)
		records = append(records, rec)
		stats.Imported++
	}

	log.Info(config.MsgImportDone,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.Processed),
			slog.Int(config.LogKeyImported, stats.Imported),
			slog.Int(config.LogKeySkipped, stats.SkippedCards),
		),
	)
	return records, stats, nil
}

// fromCard builds a record from card. It returns nil when the card has no
// usable name or no valid phone, along with the number of rejected values.
func fromCard(card vcard.Card, log *slog.Logger) (*phonebook.Record, int) {
	name := cardName(card)
	if name == "" {
		return nil, 0
	}

	rec := phonebook.NewRecord(name)
	skipped := 0
	for _, tel := range card.Values(vcard.FieldTelephone) {
		value := strings.TrimPrefix(strings.TrimSpace(tel), telURIPrefix)
		if err := rec.AddPhone(value); err != nil {
			log.Debug(config.MsgSkippedValue, config.LogKeyValue, tel, config.LogKeyError, err)
			skipped++
		}
	}
	if len(rec.Phones()) == 0 {
		return nil, skipped
	}

	if bday := card.Value(vcard.FieldBirthday); bday != "" {
		if err := addVCardBirthday(rec, bday); err != nil {
			log.Debug(config.MsgSkippedValue, config.LogKeyValue, bday, config.LogKeyError, err)
			skipped++
		}
	}
	return rec, skipped
}

// cardName follows FN > N (given + family) > empty. The shell reads a name as
// a single token, so words are joined with NameWordSeparator.
func cardName(card vcard.Card) string {
	name := card.Value(vcard.FieldFormattedName)
	if strings.TrimSpace(name) == "" {
		if n := card.Name(); n != nil {
			name = n.GivenName + " " + n.FamilyName
		}
	}
	return strings.Join(strings.Fields(name), config.NameWordSeparator)
}

// addVCardBirthday converts a vCard BDAY into the record's DD.MM.YYYY form.
func addVCardBirthday(rec *phonebook.Record, value string) error {
	for _, layout := range []string{config.DateFormatVCard, config.DateFormatVCardBasic} {
		if t, err := time.Parse(layout, value); err == nil {
			return rec.AddBirthday(t.Format(config.DateFormatBirthday))
		}
	}
	// Not a full date; let the core report the validation failure.
	return rec.AddBirthday(value)
}
