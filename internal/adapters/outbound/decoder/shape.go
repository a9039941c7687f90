package decoder

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed summary.schema.json
var summarySchema string

const summarySchemaURL = "summary.schema.json"

// shapeChecker compares summary reports against the expected shape.
// Mismatches are reported to the caller, never used to reject input.
type shapeChecker struct {
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

func newShapeChecker() *shapeChecker {
	return &shapeChecker{}
}

func (c *shapeChecker) compile() {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(summarySchema))
	if err != nil {
		c.err = fmt.Errorf("parsing summary schema: %w", err)
		return
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(summarySchemaURL, doc); err != nil {
		c.err = fmt.Errorf("adding summary schema: %w", err)
		return
	}

	c.schema, c.err = compiler.Compile(summarySchemaURL)
}

func (c *shapeChecker) check(data []byte) error {
	c.once.Do(c.compile)
	if c.err != nil {
		return c.err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	return c.schema.Validate(inst)
}
