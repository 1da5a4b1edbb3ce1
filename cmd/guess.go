package cmd

import (
	"context"
	"os"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pfenwick/coursedates/data"
	"github.com/pfenwick/coursedates/data/coursestore"
	"github.com/pfenwick/coursedates/data/db"
	"github.com/pfenwick/coursedates/guess"
)

var (
	guessStartFlag bool
	guessEndFlag   bool
	guessAllFlag   bool
	updateFlag     bool
	filterFlag     string
)

// guessCmd represents the guess command
var guessCmd = &cobra.Command{
	Use:   "guess",
	Short: "Guesses missing course start and end dates",
	Long: `Guesses start and end dates for courses that are missing them based
on their activity log history and prints what it decided per course
(pass --update to actually save the guesses)`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := log.WithFields(log.Fields{
			"job": "guessdates",
			"run": uuid.New(),
		})
		ctx := context.Background()

		filter, err := guess.ParseIDFilter(filterFlag)
		if err != nil {
			logger.Error("Invalid course id filter ", err)
			return
		}

		dbPool, err := data.NewPool(ctx)
		if err != nil {
			logger.Error("Could not connect to the database ", err)
			return
		}

		runner := guess.NewRunner(
			coursestore.New(dbPool),
			guess.NewLogEstimator(db.New(dbPool)),
			coursestore.ManageCapability(),
			os.Stdout,
			logger,
		)

		logger.Info("Starting course date guessing")
		err = runner.Run(ctx, guess.Options{
			GuessStart: guessStartFlag,
			GuessEnd:   guessEndFlag,
			GuessAll:   guessAllFlag,
			Update:     updateFlag,
			Filter:     filter,
		})
		if err != nil {
			logger.Error("Course date guessing stopped ", err)
			return
		}
		logger.Info("Finished course date guessing")
	},
}

func init() {
	rootCmd.AddCommand(guessCmd)

	guessCmd.Flags().BoolVar(&guessStartFlag, "guessstart", true, "guess start dates for courses missing them")
	guessCmd.Flags().BoolVar(&guessEndFlag, "guessend", true, "guess end dates for courses missing them")
	guessCmd.Flags().BoolVar(&guessAllFlag, "guessall", false, "guess dates for every course even when already set")
	guessCmd.Flags().BoolVar(&updateFlag, "update", false, "save the guessed dates instead of doing a dry run")
	guessCmd.Flags().StringVar(&filterFlag, "filter", "", "comma separated course ids to restrict the run to")
}
