// Command map-caster converts a JSON or YAML document into a model described
// by a YAML schema file and prints the result as JSON.
//
//	map-caster -s schema.yaml -m Order -i order.json
//	map-caster -s s3://bucket/schema.yaml -m Order --list < orders.yaml
//	map-caster -s schema.yaml -m Order --jsonschema
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
)

func main() {
	err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if err == nil {
		return
	}

	var flagsErr *flags.Error
	if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
		fmt.Fprintln(os.Stdout, err)
		return
	}

	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
