package main

import (
	"bytes"
	"context"
	"map-caster/node"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schema = `
models:
  Order:
    fields:
      id: integer
      status: {enum: [[pending, P], [paid, 1]]}
      items: {list: Item}
  Item:
    fields:
      sku: string
      qty: integer
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)

	return stdout.String(), stderr.String(), err
}

func TestRunObject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.yaml", schema)
	inputPath := writeFile(t, dir, "order.json", `{"id": 7, "status": 1, "items": [{"sku": "a", "qty": "2"}], "extra": true}`)

	out, _, err := execute(t, "", "-s", schemaPath, "-m", "Order", "-i", inputPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 7, "status": "paid", "items": [{"sku": "a", "qty": 2}]}`, out)
}

func TestRunListFromStdin(t *testing.T) {
	t.Parallel()

	schemaPath := writeFile(t, t.TempDir(), "schema.yaml", schema)
	input := `
- Sku: a
  QTY: 3
- sku: b
`

	out, _, err := execute(t, input, "-s", schemaPath, "-m", "Item", "--list", "--normalize-keys")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"sku": "a", "qty": 3}, {"sku": "b", "qty": null}]`, out)
}

func TestRunCategories(t *testing.T) {
	t.Parallel()

	schemaPath := writeFile(t, t.TempDir(), "schema.yaml", schema)

	out, stderr, err := execute(t, `{"sku": "a", "qty": "2"}`, "-s", schemaPath, "-m", "Item", "-c", "safe-number", "-v")
	require.NoError(t, err)
	assert.JSONEq(t, `{"sku": "a", "qty": null}`, out)
	assert.Contains(t, stderr, "value cannot be coerced")

	_, _, err = execute(t, `{}`, "-s", schemaPath, "-m", "Item", "-c", "often")
	assert.Error(t, err)
}

func TestRunJSONSchema(t *testing.T) {
	t.Parallel()

	schemaPath := writeFile(t, t.TempDir(), "schema.yaml", schema)

	out, _, err := execute(t, "", "-s", schemaPath, "-m", "Order", "--jsonschema")
	require.NoError(t, err)
	assert.Contains(t, out, `"$ref": "#/$defs/Order"`)
	assert.Contains(t, out, `"Item"`)
	assert.Contains(t, out, `"enum"`)
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.yaml", schema)

	_, _, err := execute(t, "{}", "-m", "Order")
	var flagsErr *flags.Error
	require.ErrorAs(t, err, &flagsErr)
	assert.Equal(t, flags.ErrRequired, flagsErr.Type)

	_, _, err = execute(t, "{}", "-s", schemaPath, "-m", "Invoice")
	assert.ErrorIs(t, err, node.ErrSchemaMissing)

	_, _, err = execute(t, "{}", "-s", filepath.Join(dir, "missing.yaml"), "-m", "Order")
	assert.Error(t, err)

	_, _, err = execute(t, "[1, 2", "-s", schemaPath, "-m", "Order")
	assert.Error(t, err)

	bad := writeFile(t, dir, "bad.yaml", "models: {A: {fields: {x: Nope}}}")
	_, _, err = execute(t, "{}", "-s", bad, "-m", "A")
	assert.ErrorContains(t, err, "A.x")
}
