package main

import (
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/rental-platform/internal/audit"
	dbpkg "github.com/BruksfildServices01/rental-platform/internal/db"
	infraRepo "github.com/BruksfildServices01/rental-platform/internal/infra/repository"
	ucBooking "github.com/BruksfildServices01/rental-platform/internal/usecase/booking"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations and constraints",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, logger, db, err := bootstrap()
			if err != nil {
				return err
			}
			if err := dbpkg.Migrate(db); err != nil {
				return err
			}
			logger.Info("migrations applied")
			return nil
		},
	}
}

// completeBookingsCmd runs the nightly completion job once.
func completeBookingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete-bookings",
		Short: "Complete confirmed bookings whose check-out day has passed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, logger, db, err := bootstrap()
			if err != nil {
				return err
			}
			dispatcher := audit.NewDispatcher(logger, audit.New(db))
			defer dispatcher.Close(cmd.Context())

			n, err := ucBooking.NewCompletePastBookings(
				infraRepo.NewBookingGormRepository(db),
				dispatcher,
				logger,
			).Execute(cmd.Context())
			if err != nil {
				return err
			}
			logger.Info("bookings completed", "count", n)
			return nil
		},
	}
}
