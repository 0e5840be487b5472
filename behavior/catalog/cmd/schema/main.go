// Command schema emits the JSON schema for behavior profile documents so
// designer tooling can validate tuning files before they reach the world.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"

	"github.com/invopop/jsonschema"

	"puppet-master/sim/behavior/catalog"
)

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "", "output path for the JSON schema")
	flag.Parse()

	if outPath == "" {
		log.Fatal("schema: missing -out path")
	}

	schema, err := buildSchema()
	if err != nil {
		log.Fatalf("schema: %v", err)
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("schema: marshal: %v", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		log.Fatalf("schema: create output dir: %v", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		log.Fatalf("schema: write: %v", err)
	}
}

func buildSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}

	entrySchema := reflector.ReflectFromType(reflect.TypeOf(catalog.Profile{}))
	if entrySchema == nil {
		return nil, fmt.Errorf("failed to reflect profile schema")
	}
	entrySchema.Version = ""
	entrySchema.Title = "Behavior Profile"
	entrySchema.Description = "Designer-authored tuning overlay for one behavior variant."

	root := &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       "Behavior Profile Catalog",
		Description: "Array of per-variant tuning profiles resolved against compiled defaults.",
		Type:        "array",
		Items:       entrySchema,
	}

	return root, nil
}
