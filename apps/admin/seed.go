package main

import (
	"fmt"

	"github.com/trezcool/hatari/sampledata"
)

func (cli *commandLine) seed(count int) error {
	if err := sampledata.Seed(cli.studentRepo, cli.alertRepo, cli.predRepo, count, 0); err != nil {
		return err
	}
	fmt.Printf("seeded %d students with attendance, grades, behavior, alerts and predictions\n", count)
	return nil
}
