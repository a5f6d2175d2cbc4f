package manifest

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaSource string

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("manifest.schema.json", schemaSource)
})

// friendlyMessages replaces schema failures whose generic wording would not
// tell a user what to fix.
var friendlyMessages = map[string]string{
	"/anyOf":                                    "missing project_name (or legacy project.name)",
	"/required":                                 "missing assets object",
	"/properties/assets/type":                   "assets must be an object",
	"/properties/assets/anyOf":                  "assets must include at least one of images, audio, bgm",
	"/properties/assets/properties/images/type": "assets.images must be an array",
	"/properties/assets/properties/audio/type":  "assets.audio must be an array",
	"/properties/assets/properties/fonts/type":  "assets.fonts must be an array",
}

// Validate checks a decoded manifest against the manifest schema and
// returns one readable problem per failure, sorted. An empty result means
// the manifest is valid.
func Validate(data any) []string {
	schema, err := compiledSchema()
	if err != nil {
		return []string{fmt.Sprintf("manifest schema: %v", err)}
	}

	// The validator only understands encoding/json value types.
	payload, err := json.Marshal(data)
	if err != nil {
		return []string{fmt.Sprintf("encode manifest: %v", err)}
	}
	var decoded any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return []string{fmt.Sprintf("decode manifest: %v", err)}
	}

	err = schema.Validate(decoded)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return []string{err.Error()}
	}

	seen := make(map[string]bool)
	collectProblems(verr, seen)
	problems := make([]string, 0, len(seen))
	for p := range seen {
		problems = append(problems, p)
	}
	sort.Strings(problems)
	return problems
}

func collectProblems(e *jsonschema.ValidationError, out map[string]bool) {
	if msg, ok := friendlyMessages[e.KeywordLocation]; ok {
		out[msg] = true
		return
	}
	if len(e.Causes) == 0 {
		out[describe(e)] = true
		return
	}
	for _, cause := range e.Causes {
		collectProblems(cause, out)
	}
}

func describe(e *jsonschema.ValidationError) string {
	location := strings.TrimPrefix(e.InstanceLocation, "/")
	if location == "" {
		return e.Message
	}
	return strings.ReplaceAll(location, "/", ".") + ": " + e.Message
}
