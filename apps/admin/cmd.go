package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/trezcool/hatari/core/alert"
	"github.com/trezcool/hatari/core/prediction"
	"github.com/trezcool/hatari/core/student"
	"github.com/trezcool/hatari/sampledata"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	studentRepo student.Repository
	alertRepo   alert.Repository
	predRepo    prediction.Repository
	alertSvc    *alert.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  seed [-students N] - load the demo dataset")
	fmt.Println("  predict - run risk predictions for all students and process alerts")
	fmt.Println("  autoack -actor NAME - acknowledge stale alerts past the configured window")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	seedCount := seedCmd.Int("students", sampledata.DefaultStudentCount, "Number of students to generate.")

	predictCmd := flag.NewFlagSet("predict", flag.ExitOnError)

	autoackCmd := flag.NewFlagSet("autoack", flag.ExitOnError)
	autoackActor := autoackCmd.String("actor", "", "Name recorded as the acknowledging actor.")

	switch args[1] {
	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.seed(*seedCount)
	case "predict":
		if err := predictCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.predict()
	case "autoack":
		if err := autoackCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *autoackActor == "" {
			autoackCmd.Usage()
			return errHelp
		}
		return cli.autoAcknowledge(*autoackActor)
	default:
		cli.printUsage()
		return errHelp
	}
}
