package progress

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrInvalidSnapshot wraps every failure to decode a user snapshot.
var ErrInvalidSnapshot = errors.New("invalid user snapshot")

// snapshotSchema describes the user snapshot accepted at the boundary.
// The document may be null, and progress may be missing or null.
const snapshotSchema = `{
	"type": ["object", "null"],
	"properties": {
		"id": {"type": "string"},
		"name": {"type": "string"},
		"coins": {"type": "integer", "minimum": 0},
		"progress": {
			"type": ["array", "null"],
			"items": {
				"type": "object",
				"properties": {
					"level_id": {"type": "integer"},
					"status": {"type": "string"}
				},
				"required": ["level_id", "status"]
			}
		}
	}
}`

const snapshotSchemaURL = "schema://user-snapshot.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(snapshotSchema)))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(snapshotSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(snapshotSchemaURL)
	})
	return compiled, compileErr
}

// Decode validates raw against the snapshot schema and returns the typed
// user. A JSON null document yields a nil user and no error.
//
// Integers are read from the validated document, so 2.0 and 5e0 are level
// ids 2 and 5. Values beyond the int range saturate at math.MaxInt or
// math.MinInt.
func Decode(raw []byte) (*User, error) {
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %w", ErrInvalidSnapshot, err)
	}

	s, err := schema()
	if err != nil {
		return nil, fmt.Errorf("compile snapshot schema: %w", err)
	}
	if err := s.Validate(parsed); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	doc, ok := parsed.(map[string]any)
	if !ok {
		return nil, nil
	}

	u := &User{Progress: []Entry{}}
	u.ID, _ = doc["id"].(string)
	u.Name, _ = doc["name"].(string)
	if n, ok := doc["coins"].(json.Number); ok {
		if u.Coins, err = integer(n); err != nil {
			return nil, fmt.Errorf("%w: coins: %w", ErrInvalidSnapshot, err)
		}
	}

	items, _ := doc["progress"].([]any)
	for i, item := range items {
		obj, _ := item.(map[string]any)
		n, _ := obj["level_id"].(json.Number)
		id, err := integer(n)
		if err != nil {
			return nil, fmt.Errorf("%w: progress[%d].level_id: %w", ErrInvalidSnapshot, i, err)
		}
		status, _ := obj["status"].(string)
		u.Progress = append(u.Progress, Entry{LevelID: id, Status: Status(status)})
	}
	return u, nil
}

// integer converts an integral JSON number to int, saturating at the bounds
// of int.
func integer(n json.Number) (int, error) {
	f, _, err := big.ParseFloat(string(n), 10, 64, big.ToNearestEven)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", n, err)
	}
	switch {
	case f.Cmp(big.NewFloat(math.MaxInt)) >= 0:
		return math.MaxInt, nil
	case f.Cmp(big.NewFloat(math.MinInt)) <= 0:
		return math.MinInt, nil
	case !f.IsInt():
		return 0, fmt.Errorf("%s is not an integer", n)
	}
	v, _ := f.Int64()
	return int(v), nil
}
