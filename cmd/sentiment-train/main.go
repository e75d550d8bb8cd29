package main

import (
	"context"
	"github.com/alexflint/go-arg"
	"go-ml.dev/pkg/sentiment/config"
	"go-ml.dev/pkg/sentiment/runner"
	"log"
	"os"
)

func main() {
	cfg := config.Default()
	arg.MustParse(&cfg)
	if _, err := runner.Run(context.Background(), cfg, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
