package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/saulo-duarte/quiz-proctor/internal/config"
	"github.com/saulo-duarte/quiz-proctor/internal/container"
	"github.com/saulo-duarte/quiz-proctor/internal/group"
	"github.com/saulo-duarte/quiz-proctor/internal/quiz"
	"github.com/saulo-duarte/quiz-proctor/internal/student"
)

func connect(c *cli.Context) error {
	config.Init()
	config.InitCrypto()

	dsn := c.String("dsn")
	if dsn == "" {
		dsn = config.Conf.GetString("database_dsn")
	}
	return config.Connect(c.Context, dsn)
}

func studentService() student.StudentService {
	return student.NewService(student.NewRepository(config.DB))
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "create or update the schema",
		Before: connect,
		Action: func(c *cli.Context) error {
			if err := container.Migrate(config.DB); err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, "Schema up to date")
			return nil
		},
	}
}

func seedStudentsCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed-students",
		Usage: "replace the roster with a spreadsheet, or with demo students when no file is given",
		Flags: []cli.Flag{
			&cli.PathFlag{Name: "file", Aliases: []string{"f"}, Usage: ".xlsx or .csv roster"},
		},
		Before: connect,
		Action: func(c *cli.Context) error {
			rows := demoRoster()
			if path := c.Path("file"); path != "" {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()

				rows, err = student.ParseRoster(filepath.Base(path), f)
				if err != nil {
					return err
				}
			}

			n, err := studentService().ImportRoster(c.Context, rows)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "Seeded %d students\n", n)
			return nil
		},
	}
}

func initQuizCommand() *cli.Command {
	return &cli.Command{
		Name:  "init-quiz",
		Usage: "replace every quiz with one active quiz read from a JSON question file",
		Flags: []cli.Flag{
			&cli.PathFlag{Name: "file", Aliases: []string{"f"}, Required: true, Usage: `JSON array of {"text","options","correctAnswer","points"}`},
			&cli.StringFlag{Name: "title", Value: "Departmental Technical Quiz"},
			&cli.IntFlag{Name: "timer", Value: 45, Usage: "seconds per question"},
		},
		Before: connect,
		Action: func(c *cli.Context) error {
			data, err := os.ReadFile(c.Path("file"))
			if err != nil {
				return err
			}

			dto := quiz.NewCreateQuizDTO()
			if err := json.Unmarshal(data, &dto.Questions); err != nil {
				return fmt.Errorf("parse %s: %w", c.Path("file"), err)
			}
			dto.Title = c.String("title")
			dto.IsActive = true
			dto.Settings.TimerPerQuestion = c.Int("timer")
			dto.Settings.TotalQuestions = len(dto.Questions)
			if err := config.Validate(dto); err != nil {
				return err
			}

			groups := group.NewService(group.NewRepository(config.DB), studentService(), 0, 0)
			svc := quiz.NewService(quiz.NewRepository(config.DB), groups)
			q, err := svc.Reset(c.Context, dto)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "Quiz %s initialized with %d questions\n", q.ID, len(q.Questions))
			return nil
		},
	}
}

func clearAttemptsCommand() *cli.Command {
	return &cli.Command{
		Name:  "clear-attempts",
		Usage: "delete every group and its violation log; students are kept",
		Before: connect,
		Action: func(c *cli.Context) error {
			groups := group.NewService(group.NewRepository(config.DB), studentService(), 0, 0)
			n, err := groups.ClearAttempts(c.Context)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "Cleared %d group attempts\n", n)
			return nil
		},
	}
}

func demoRoster() []student.RosterRow {
	names := []string{
		"Alice Smith", "Bob Johnson", "Charlie Brown",
		"Diana Prince", "Ethan Hunt", "Fiona Green",
		"George Wilson", "Hannah Lee", "Ian Taylor",
		"Julia Roberts", "Kevin Hart", "Laura Davis",
	}
	rows := make([]student.RosterRow, len(names))
	for i, name := range names {
		rows[i] = student.RosterRow{
			TechziteID:  fmt.Sprintf("TZ2024%03d", i+1),
			Name:        name,
			Email:       fmt.Sprintf("student%02d@techzite.com", i+1),
			PhoneNumber: fmt.Sprintf("98765432%02d", 10+i),
		}
	}
	return rows
}
