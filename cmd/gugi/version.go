package main

import (
	"context"
	"fmt"

	"github.com/a-h/gugi"
)

type VersionCommand struct {
}

func (c VersionCommand) Run(ctx context.Context) (err error) {
	fmt.Println(gugi.Version)
	return nil
}
