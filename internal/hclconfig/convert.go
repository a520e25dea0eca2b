package hclconfig

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/nodesim/internal/config"
	"github.com/specialistvlad/nodesim/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// isExprDefined reports whether an optional attribute was written in the
// source. gohcl fills omitted optional expressions with a zero-width
// placeholder, so a nil check is not enough.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	defined := r.End.Byte > r.Start.Byte
	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", r.String(),
		"is_defined", defined,
	)
	return defined
}

// ctyToValue converts an evaluated expression into a config value. Objects
// and maps are rejected.
func ctyToValue(v cty.Value) (config.Value, error) {
	if v.IsNull() {
		return config.Null(), nil
	}
	if !v.IsWhollyKnown() {
		return config.Value{}, errors.New("value is not known")
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return config.String(v.AsString()), nil

	case ty == cty.Bool:
		return config.Bool(v.True()), nil

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return config.Int(i), nil
			}
		}
		f, _ := bf.Float64()
		return config.Float(f), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		list := make([]config.Value, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, ev := it.Element()
			e, err := ctyToValue(ev)
			if err != nil {
				return config.Value{}, fmt.Errorf("element %d: %w", len(list), err)
			}
			list = append(list, e)
		}
		return config.List(list...), nil

	default:
		return config.Value{}, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}

// ctyToIdentifier converts an evaluated identifier into the raw form the
// normalizer classifies: int64 for integral numbers, string for strings and
// the native value otherwise.
func ctyToIdentifier(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, config.ErrMissingIdentifier
	}
	switch v.Type() {
	case cty.String:
		return v.AsString(), nil
	case cty.Number:
		var i int64
		if err := gocty.FromCtyValue(v, &i); err == nil {
			return i, nil
		}
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("could not convert identifier: %w", err)
		}
		return f, nil
	case cty.Bool:
		return v.True(), nil
	default:
		val, err := ctyToValue(v)
		if err != nil {
			return nil, err
		}
		return val.Native(), nil
	}
}

// evalExpr evaluates an expression without variables.
func evalExpr(expr hcl.Expression) (cty.Value, error) {
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	return v, nil
}
