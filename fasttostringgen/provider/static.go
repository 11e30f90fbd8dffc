package provider

import (
	"context"

	"github.com/broady/fasttostring/fasttostringgen/ir"
)

// StaticSource is a DeclarationSource over schemas built elsewhere, such as
// by a front end for pre-parsed syntax or by tests.
type StaticSource []*ir.Schema

var _ DeclarationSource = StaticSource(nil)

// ListAnnotatedEnums returns the schemas with duplicate enums removed.
// Each call returns fresh schemas; the receiver is never modified.
func (s StaticSource) ListAnnotatedEnums(ctx context.Context) ([]*ir.Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]*ir.Schema, 0, len(s))
	for _, in := range s {
		schema := &ir.Schema{
			Package:  in.Package,
			Warnings: append([]ir.Warning(nil), in.Warnings...),
		}
		for _, e := range in.Enums {
			schema.AddEnum(e)
		}
		out = append(out, schema)
	}
	return out, nil
}
