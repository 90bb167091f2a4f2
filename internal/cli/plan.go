package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"GolfPassport/internal/model"
	"GolfPassport/internal/report"
	"GolfPassport/internal/session"
)

const bookingLayout = "2006-01-02T15:04"

type planOptions struct {
	packageID string
	add       []int
	remove    []int
	addOns    []string
	topUps    []int
	bookings  []string
	extras    []string
}

func newPlanCommand(app *App) *cobra.Command {
	var opts planOptions
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build a membership plan and show the summary",
		Long: `Replay a set of changes against a fresh session and print the result.
Operations run in a fixed order: top-ups, added rounds, removed rounds,
add-ons, then bookings. Refused rounds are reported and skipped.`,
		Example: `  passport plan --package core --add 2 --add 2 --add 16 --addon guest_pass
  passport plan --add 16 --book 16@2026-06-01T09:00 --extras cart,meal`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, app, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.packageID, "package", app.Config.Membership.PackageID, "membership package id")
	f.IntSliceVar(&opts.add, "add", nil, "add one round at course id (repeatable)")
	f.IntSliceVar(&opts.remove, "remove", nil, "remove one round at course id (repeatable)")
	f.StringSliceVar(&opts.addOns, "addon", nil, "toggle add-on id (repeatable)")
	f.IntSliceVar(&opts.topUps, "top-up", nil, fmt.Sprintf("buy extra credits (presets %v)", app.Catalog.TopUpPresets()))
	f.StringArrayVar(&opts.bookings, "book", nil, "book a round as COURSE_ID or COURSE_ID@"+bookingLayout)
	f.StringSliceVar(&opts.extras, "extras", nil, "extras for every booking: cart, insurance, meal, balls")
	return cmd
}

func runPlan(cmd *cobra.Command, app *App, opts planOptions) error {
	extras, err := parseExtras(opts.extras)
	if err != nil {
		return err
	}

	sess, err := session.New(app.Catalog, profileFromConfig(app), opts.packageID, app.Recorder, app.Log)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, n := range opts.topUps {
		if err := sess.TopUp(n); err != nil {
			return err
		}
	}
	for _, id := range opts.add {
		if err := sess.Increment(id); err != nil {
			fmt.Fprintf(out, "Refused: %s\n", err)
		}
	}
	for _, id := range opts.remove {
		if err := sess.Decrement(id); err != nil {
			return err
		}
	}
	for _, id := range opts.addOns {
		if err := sess.ToggleAddOn(id); err != nil {
			return err
		}
	}

	now := app.Now()
	for _, raw := range opts.bookings {
		courseID, when, err := parseBooking(raw, now)
		if err != nil {
			return err
		}
		if _, err := sess.Book(courseID, when, extras); err != nil {
			return fmt.Errorf("book %q: %w", raw, err)
		}
	}

	view := sess.Snapshot()
	next, hasNext := sess.NextRound(now)
	fmt.Fprint(out, report.FormatSummary(view, app.Catalog))
	fmt.Fprintln(out)
	fmt.Fprint(out, report.FormatDashboard(view, app.Catalog, next, hasNext))
	return nil
}

func profileFromConfig(app *App) session.Profile {
	p := app.Config.Profile
	return session.Profile{
		Name:     p.Name,
		Email:    p.Email,
		Postcode: p.Postcode,
		Handicap: p.Handicap,
		Area: model.SearchArea{
			Home:        model.Point{Lat: p.HomeLat, Lon: p.HomeLon},
			RadiusMiles: p.RadiusMiles,
		},
	}
}

// parseBooking reads COURSE_ID[@TIME]. Without a time the round is booked
// for tomorrow morning.
func parseBooking(raw string, now time.Time) (int, time.Time, error) {
	idPart, timePart, hasTime := strings.Cut(raw, "@")
	id, err := strconv.Atoi(idPart)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("%w: booking %q: bad course id", model.ErrInvalidArgument, raw)
	}
	if !hasTime {
		return id, session.DefaultBookingTime(now), nil
	}
	when, err := time.ParseInLocation(bookingLayout, timePart, now.Location())
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("%w: booking %q: %v", model.ErrInvalidArgument, raw, err)
	}
	return id, when, nil
}

func parseExtras(names []string) (model.BookingExtras, error) {
	var e model.BookingExtras
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "cart":
			e.Cart = true
		case "insurance":
			e.Insurance = true
		case "meal":
			e.Meal = true
		case "balls":
			e.Balls = true
		case "":
		default:
			return e, fmt.Errorf("%w: unknown extra %q", model.ErrInvalidArgument, n)
		}
	}
	return e, nil
}
