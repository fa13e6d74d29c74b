package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/TrainNomad/raptor-backend/artifact"
	"github.com/TrainNomad/raptor-backend/feed"
	"github.com/TrainNomad/raptor-backend/model"
	"github.com/TrainNomad/raptor-backend/reconcile"
	"github.com/TrainNomad/raptor-backend/timetable"
)

var rootCmd = &cobra.Command{
	Use:          "raptor-ingest",
	Short:        "Builds a queryable timetable artifact from operator GTFS-style feeds",
	Long:         "Reads per-operator feed directories, repairs and merges them into one timetable, reconciles stations and transfers, and persists the result for raptor-server",
	SilenceUsage: true,
}

var (
	feedDirs     []string
	manifestPath string
	blacklist    string
	whitelist    string
	outDir       string
)

func init() {
	rootCmd.Flags().StringSliceVarP(
		&feedDirs,
		"feed",
		"f",
		nil,
		"Operator feed directory as <OPERATOR>=<path> (repeatable)",
	)
	rootCmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Path to the curated station manifest CSV")
	rootCmd.Flags().StringVarP(&blacklist, "blacklist", "", "", "Path to the station merge blacklist CSV")
	rootCmd.Flags().StringVarP(&whitelist, "whitelist", "", "", "Path to the station merge whitelist CSV")
	rootCmd.Flags().StringVarP(&outDir, "out", "o", "./artifact-out", "Directory to write the persisted artifact into")
	rootCmd.RunE = ingest
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func parseFeedDirs(specs []string) (map[model.Operator]string, error) {
	dirs := map[model.Operator]string{}
	for _, spec := range specs {
		parts := strings.SplitN(spec, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("'%s' is not on form <OPERATOR>=<path>", spec)
		}
		dirs[model.Operator(parts[0])] = parts[1]
	}
	return dirs, nil
}

func ingest(cmd *cobra.Command, args []string) error {
	dirs, err := parseFeedDirs(feedDirs)
	if err != nil {
		return err
	}
	if len(dirs) == 0 {
		return fmt.Errorf("at least one --feed is required")
	}

	var feeds []*feed.RawFeed
	for operator, dir := range dirs {
		raw, warnings, err := feed.ReadOperator(dir, operator)
		if err != nil {
			return errors.Wrapf(err, "reading feed for %s", operator)
		}
		for _, w := range warnings {
			log.Printf("%s: %v", operator, w)
		}
		feeds = append(feeds, raw)
	}

	tt := timetable.Build(feeds)

	var manifest []reconcile.ManifestEntry
	if manifestPath != "" {
		f, err := os.Open(manifestPath)
		if err != nil {
			return errors.Wrap(err, "opening manifest")
		}
		defer f.Close()
		manifest, err = reconcile.LoadManifest(f)
		if err != nil {
			return errors.Wrap(err, "parsing manifest")
		}
	}

	blacklistPairs, err := loadPairsOrEmpty(blacklist)
	if err != nil {
		return errors.Wrap(err, "loading blacklist")
	}
	whitelistPairs, err := loadPairsOrEmpty(whitelist)
	if err != nil {
		return errors.Wrap(err, "loading whitelist")
	}

	stations := reconcile.BuildStationIndex(tt.Stops, manifest, blacklistPairs, whitelistPairs)
	transfers := reconcile.BuildTransferIndex(tt.Stops, manifest, stations)

	meta := artifact.Meta{
		BuiltAt:      time.Now(),
		StopCount:    len(tt.Stops),
		RouteCount:   len(tt.RoutesInfo),
		StationCount: len(stations),
	}
	for _, trips := range tt.RouteTrips {
		meta.TripCount += len(trips)
	}
	seenOperators := map[model.Operator]bool{}
	for _, s := range tt.Stops {
		if !seenOperators[s.Operator] {
			seenOperators[s.Operator] = true
			meta.Operators = append(meta.Operators, s.Operator)
		}
	}

	store := artifact.NewDiskStore(outDir)
	if err := artifact.PersistTimetable(store, tt, transfers, stations, meta); err != nil {
		return errors.Wrap(err, "persisting artifact")
	}

	log.Printf("ingested %d stops, %d trips, %d stations into %s", meta.StopCount, meta.TripCount, meta.StationCount, outDir)
	return nil
}

func loadPairsOrEmpty(path string) (map[reconcile.StopPair]bool, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return reconcile.LoadPairs(f)
}
