package main

import (
	"context"
	"fmt"
)

func (cli *commandLine) predict() error {
	predictions, err := cli.alertSvc.RunPredictions(context.Background())
	if err != nil {
		return err
	}
	for _, p := range predictions {
		fmt.Printf("%s: %s (score %.2f, confidence %.2f, model %s)\n",
			p.StudentID, p.RiskLevel, p.RiskScore, p.Confidence, p.ModelVersion)
	}
	fmt.Printf("processed %d predictions\n", len(predictions))
	return nil
}
