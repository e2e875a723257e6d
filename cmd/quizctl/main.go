package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/saulo-duarte/quiz-proctor/internal/config"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		config.Logger.WithError(err).Fatal("quizctl failed")
	}
}

// newApp builds the command tree. Only the commands open the database, so
// help and usage errors work without one.
func newApp() *cli.App {
	return &cli.App{
		Name:  "quizctl",
		Usage: "maintenance tasks for the quiz event database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dsn",
				Usage:   "postgres DSN",
				EnvVars: []string{"DATABASE_DSN"},
			},
		},
		Commands: []*cli.Command{
			migrateCommand(),
			seedStudentsCommand(),
			initQuizCommand(),
			clearAttemptsCommand(),
		},
	}
}
