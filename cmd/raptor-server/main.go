package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/TrainNomad/raptor-backend/artifact"
	"github.com/TrainNomad/raptor-backend/httpserver"
	"github.com/TrainNomad/raptor-backend/query"
)

var rootCmd = &cobra.Command{
	Use:          "raptor-server",
	Short:        "Serves journey queries over HTTP from a persisted timetable artifact",
	Long:         "Loads the artifact written by raptor-ingest and serves /api/search, /api/explore and related endpoints",
	SilenceUsage: true,
}

var (
	artifactDir string
	tariffCSV   string
	port        string
)

func init() {
	rootCmd.Flags().StringVarP(&artifactDir, "artifact", "a", "./artifact-out", "Directory the ingest step wrote the artifact to")
	rootCmd.Flags().StringVarP(&tariffCSV, "tariffs", "", "", "Path to the flat tariff product-index CSV")
	rootCmd.Flags().StringVarP(&port, "port", "p", "8080", "Port to listen on")
	rootCmd.RunE = serve
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func serve(cmd *cobra.Command, args []string) error {
	store, err := artifact.OpenDiskStore(artifactDir)
	if err != nil {
		log.Fatalf("loading artifact from %s: %v", artifactDir, err)
	}

	tt, transfers, stations, err := artifact.LoadTimetable(store)
	if err != nil {
		log.Fatalf("reconstructing timetable: %v", err)
	}

	snap := query.NewSnapshot(tt, transfers, stations)

	var tariffs *httpserver.TariffTable
	if tariffCSV != "" {
		f, err := os.Open(tariffCSV)
		if err != nil {
			return errors.Wrap(err, "opening tariff CSV")
		}
		defer f.Close()
		tariffs, err = httpserver.LoadTariffTable(f)
		if err != nil {
			return errors.Wrap(err, "parsing tariff CSV")
		}
	}

	srv := httpserver.New(snap, tariffs)
	return srv.ListenAndServe(":" + port)
}
