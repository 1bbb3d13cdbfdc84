package main

import "github.com/openshift-assisted/machine-monitor/cmd/machine-monitor/cmd"

func main() {
	cmd.Execute()
}
