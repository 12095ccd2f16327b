package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cmlabs-hris/bizops-backend-go/internal/cli"
	"github.com/cmlabs-hris/bizops-backend-go/internal/config"
)

func main() {
	if err := cli.NewRootCmd(config.Load).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
