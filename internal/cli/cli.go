// Package cli is the command line form and list view over the records API.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"github.com/tailtrack/tailtrack/internal/client"
	"github.com/tailtrack/tailtrack/internal/components/exercise"
	"github.com/tailtrack/tailtrack/internal/summary"
)

const dateLayout = "2006-01-02 15:04"

// ErrUsage is returned when the arguments do not name a runnable command.
var ErrUsage = errors.New("invalid usage")

type (
	// API is the part of *client.Client the commands use.
	API interface {
		PetID() string
		List(ctx context.Context, petID string) ([]exercise.Record, error)
		Create(ctx context.Context, in exercise.CreateRecordIn) (*exercise.Record, error)
		Update(ctx context.Context, id string, in exercise.UpdateRecordIn) (*exercise.Record, error)
		Delete(ctx context.Context, id string) (bool, error)
		Weekly(ctx context.Context, now time.Time) (summary.WeeklyTotals, []exercise.Record, error)
	}

	CLI struct {
		writer io.Writer
		api    API
		logger zerolog.Logger
		now    func() time.Time
	}

	// recordFlags are shared by add and edit.
	recordFlags struct {
		pet      string
		date     string
		activity string
		duration float64
		distance float64
		unit     string
		notes    string
	}
)

func NewCLI(w io.Writer, api API, logger zerolog.Logger) *CLI {
	return &CLI{
		writer: w,
		api:    api,
		logger: logger.With().Str("component", "cli").Logger(),
		now:    time.Now,
	}
}

func (c *CLI) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		c.Usage()
		return ErrUsage
	}

	switch args[0] {
	case "list":
		return c.List(ctx, args[1:])
	case "add":
		return c.Add(ctx, args[1:])
	case "edit":
		return c.Edit(ctx, args[1:])
	case "delete":
		return c.Delete(ctx, args[1:])
	case "week":
		return c.Week(ctx)
	case "activities":
		c.Activities()
		return nil
	case "help", "-h", "--help":
		c.Usage()
		return nil
	default:
		c.Usage()
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
}

func (c *CLI) Usage() {
	fmt.Fprint(c.writer, `Usage: tailtrack <command> [flags]

Commands:
	list [--pet ID] [--all]       list records, newest first
	add --activity A --duration M [--date D] [--distance N --unit mi|km] [--notes T] [--pet ID]
	edit <id> [same flags as add] change only the given fields
	delete <id>                   remove a record
	week                          totals for the last seven days
	activities                    list accepted activity types

Environment: TAILTRACK_API_URL, TAILTRACK_PET_ID, TAILTRACK_TIMEOUT
`)
}

// List prints the pet's records with distance in both units and pace.
func (c *CLI) List(ctx context.Context, args []string) error {
	fs := c.flagSet("list")
	pet := fs.String("pet", c.api.PetID(), "pet id")
	all := fs.Bool("all", false, "list records for every pet")
	if err := fs.Parse(args); err != nil {
		return err
	}

	petID := *pet
	if *all {
		petID = ""
	}

	records, err := c.api.List(ctx, petID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(c.writer, "No records yet.")
		return nil
	}

	tw := tabwriter.NewWriter(c.writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tACTIVITY\tDURATION\tDISTANCE\tPACE\tNOTES\tID")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s min\t%s\t%s\t%s\t%s\n",
			formatDate(r.Date),
			r.ActivityType,
			formatNumber(r.DurationMinutes),
			formatDistance(r.DistanceMiles),
			formatPace(r.DurationMinutes, r.DistanceMiles),
			r.Notes,
			r.ID,
		)
	}
	return tw.Flush()
}

func (c *CLI) Add(ctx context.Context, args []string) error {
	fs := c.flagSet("add")
	f := c.bindRecordFlags(fs)
	f.date = c.now().Format(dateLayout)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !isSet(fs, "duration") {
		return fmt.Errorf("%w: add needs --duration", ErrUsage)
	}

	in, err := f.create()
	if err != nil {
		return err
	}

	record, err := c.api.Create(ctx, in)
	if err != nil {
		return err
	}

	c.logger.Debug().Str("id", record.ID).Msg("Record added")
	fmt.Fprintf(c.writer, "Added %s %s on %s (%s)\n",
		record.ActivityType, formatNumber(record.DurationMinutes)+" min", formatDate(record.Date), record.ID)
	return nil
}

// Edit sends only the flags that were given on the command line.
func (c *CLI) Edit(ctx context.Context, args []string) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return fmt.Errorf("%w: edit needs a record id", ErrUsage)
	}
	id := args[0]

	fs := c.flagSet("edit")
	f := c.bindRecordFlags(fs)
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	in, err := f.update(setFlags(fs))
	if err != nil {
		return err
	}
	if in.Empty() {
		return fmt.Errorf("%w: edit needs at least one field flag", ErrUsage)
	}

	record, err := c.api.Update(ctx, id, in)
	if err != nil {
		if client.IsNotFound(err) {
			return fmt.Errorf("no record with id %s", id)
		}
		return err
	}

	fmt.Fprintf(c.writer, "Updated %s\n", record.ID)
	return nil
}

func (c *CLI) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: delete needs exactly one record id", ErrUsage)
	}

	ok, err := c.api.Delete(ctx, args[0])
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(c.writer, "Nothing to delete for %s\n", args[0])
		return nil
	}
	fmt.Fprintf(c.writer, "Deleted %s\n", args[0])
	return nil
}

// Week prints the configured pet's totals for the trailing window.
func (c *CLI) Week(ctx context.Context) error {
	totals, _, err := c.api.Weekly(ctx, c.now())
	if err != nil {
		return err
	}

	fmt.Fprintf(c.writer, "Last %d days for %s (since %s)\n",
		summary.WindowDays, c.api.PetID(), totals.WindowStart.Format("2006-01-02"))
	fmt.Fprintf(c.writer, "Sessions: %d\n", totals.Count)
	fmt.Fprintf(c.writer, "Duration: %s min\n", formatNumber(totals.TotalDurationMinutes))
	fmt.Fprintf(c.writer, "Distance: %s\n", formatDistance(totals.TotalDistanceMiles))
	return nil
}

func (c *CLI) Activities() {
	for _, a := range exercise.ActivityTypes {
		fmt.Fprintln(c.writer, a)
	}
}

func (c *CLI) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.writer)
	return fs
}

// setFlags names the flags given on the command line, defaults excluded.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return set
}

func isSet(fs *flag.FlagSet, name string) bool {
	return setFlags(fs)[name]
}

func (c *CLI) bindRecordFlags(fs *flag.FlagSet) *recordFlags {
	f := &recordFlags{}
	fs.StringVar(&f.pet, "pet", c.api.PetID(), "pet id")
	fs.StringVar(&f.date, "date", "", "session date, e.g. 2025-03-01 or 2025-03-01T08:30")
	fs.StringVar(&f.activity, "activity", "", "activity type, see `tailtrack activities`")
	fs.Float64Var(&f.duration, "duration", 0, "duration in minutes")
	fs.Float64Var(&f.distance, "distance", 0, "distance in --unit")
	fs.StringVar(&f.unit, "unit", string(summary.Miles), "distance unit: mi or km")
	fs.StringVar(&f.notes, "notes", "", "free text notes")
	return f
}

func (f *recordFlags) create() (exercise.CreateRecordIn, error) {
	date, err := f.parseDate()
	if err != nil {
		return exercise.CreateRecordIn{}, err
	}
	activity, err := f.parseActivity()
	if err != nil {
		return exercise.CreateRecordIn{}, err
	}
	miles, err := f.miles()
	if err != nil {
		return exercise.CreateRecordIn{}, err
	}

	return exercise.CreateRecordIn{
		PetID:           f.pet,
		Date:            date,
		ActivityType:    activity,
		DurationMinutes: &f.duration,
		DistanceMiles:   miles,
		Notes:           f.notes,
	}, nil
}

func (f *recordFlags) update(set map[string]bool) (exercise.UpdateRecordIn, error) {
	var in exercise.UpdateRecordIn

	if set["pet"] {
		in.PetID = &f.pet
	}
	if set["date"] {
		date, err := f.parseDate()
		if err != nil {
			return in, err
		}
		in.Date = &date
	}
	if set["activity"] {
		activity, err := f.parseActivity()
		if err != nil {
			return in, err
		}
		in.ActivityType = &activity
	}
	if set["duration"] {
		in.DurationMinutes = &f.duration
	}
	if set["distance"] {
		miles, err := f.miles()
		if err != nil {
			return in, err
		}
		in.DistanceMiles = &miles
	}
	if set["notes"] {
		in.Notes = &f.notes
	}
	return in, nil
}

func (f *recordFlags) parseDate() (exercise.Timestamp, error) {
	ts, ok := exercise.ParseTimestamp(strings.Replace(strings.TrimSpace(f.date), " ", "T", 1))
	if !ok {
		return exercise.Timestamp{}, fmt.Errorf("invalid --date %q", f.date)
	}
	return ts, nil
}

func (f *recordFlags) parseActivity() (exercise.ActivityType, error) {
	activity, ok := exercise.ParseActivityType(f.activity)
	if !ok {
		return "", fmt.Errorf("invalid --activity %q (want one of %s)", f.activity, exercise.ActivityTypeNames())
	}
	return activity, nil
}

// miles normalizes --distance from --unit into the canonical unit.
func (f *recordFlags) miles() (float64, error) {
	unit, err := summary.ParseUnit(f.unit)
	if err != nil {
		return 0, err
	}
	input := summary.NewDistanceInput(unit)
	input.Set(f.distance)
	return input.Miles(), nil
}

func formatDate(ts exercise.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format(dateLayout)
}

func formatNumber(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func formatDistance(miles float64) string {
	return fmt.Sprintf("%.2f mi / %.2f km", summary.Round2(miles), summary.Round2(summary.MilesToKm(miles)))
}

func formatPace(duration, miles float64) string {
	pace := summary.FormatPace(duration, miles)
	if pace == "" {
		return "-"
	}
	return pace + " min/mi"
}
