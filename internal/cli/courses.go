package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"GolfPassport/internal/model"
	"GolfPassport/internal/report"
)

func newCoursesCommand(app *App) *cobra.Command {
	var (
		lat, lon, radius float64
		byDistance       bool
	)
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "List courses within a radius of home",
		Long: `List catalog courses within the radius, Signature first, then Select,
then Classic, nearest first within each. --by-distance ignores category.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			area := model.SearchArea{Home: model.Point{Lat: lat, Lon: lon}, RadiusMiles: radius}
			rank := app.Catalog.RankedWithinRadius
			if byDistance {
				rank = app.Catalog.NearestWithinRadius
			}
			seq, err := rank(area)
			if err != nil {
				return fmt.Errorf("list courses: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), report.FormatCourseList(seq, radius))
			return nil
		},
	}

	p := app.Config.Profile
	cmd.Flags().Float64Var(&lat, "lat", p.HomeLat, "home latitude")
	cmd.Flags().Float64Var(&lon, "lon", p.HomeLon, "home longitude")
	cmd.Flags().Float64Var(&radius, "radius", p.RadiusMiles, fmt.Sprintf("search radius in miles (presets %v)", app.Catalog.RadiusPresets()))
	cmd.Flags().BoolVar(&byDistance, "by-distance", false, "sort by distance only")
	return cmd
}
