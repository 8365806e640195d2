package main

// Options are the command line flags. Struct tags are interpreted by
// github.com/jessevdk/go-flags.
type Options struct {
	Schema        string   `short:"s" long:"schema"         required:"true" description:"Schema file path or URL (YAML)"`
	Model         string   `short:"m" long:"model"          required:"true" description:"Target model name"`
	Input         string   `short:"i" long:"input"          description:"Input document path or URL, JSON or YAML (stdin if empty)"`
	List          bool     `long:"list"                     description:"Input is a list of objects"`
	NormalizeKeys bool     `long:"normalize-keys"           description:"Match input keys ignoring case and separators"`
	Categories    []string `short:"c" long:"category"       description:"Allowed scalar coercion category, repeatable; overrides the schema file"`
	JSONSchema    bool     `long:"jsonschema"               description:"Print the JSON Schema of the model instead of converting"`
	Verbose       bool     `short:"v" long:"verbose"        description:"Log degraded values to stderr"`
}
