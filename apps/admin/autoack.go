package main

import "fmt"

func (cli *commandLine) autoAcknowledge(actor string) error {
	count, err := cli.alertSvc.AcknowledgeStale(actor)
	if err != nil {
		return err
	}
	fmt.Printf("acknowledged %d stale alerts as %q\n", count, actor)
	return nil
}
