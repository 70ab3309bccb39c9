package main

import (
	"fmt"

	"github.com/dhamidi/javasym/java"
)

func loadQuery(path string) (*java.Query, error) {
	model, err := java.ModelFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return java.NewQuery(model), nil
}
