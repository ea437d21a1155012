package main

import "github.com/AngelCh415/bcm-report/internal/cli"

func main() {
	cli.Execute()
}
