package preset

import (
	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/token"
)

// CompileCUE parses every preset declared in a CUE source file.
func CompileCUE(filename string, src []byte) ([]Preset, []error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, []error{formatCUEError(err, "", "cue", token.NoPos)}
	}

	root := v.LookupPath(cue.ParsePath("preset"))
	if !root.Exists() {
		return nil, nil
	}

	iter, err := root.Fields()
	if err != nil {
		return nil, []error{formatCUEError(err, "", "preset", root.Pos())}
	}

	var presets []Preset
	var errs []error
	for iter.Next() {
		p, err := CompilePreset(iter.Label(), iter.Value())
		if err != nil {
			errs = append(errs, err)
			continue
		}
		p.Source = filename
		presets = append(presets, *p)
	}
	return presets, errs
}

// CompilePreset parses one preset struct.
//
// Every field is read with its CUE type checked, so a wrong type or an
// unknown field reports the CUE position of the offending value.
func CompilePreset(name string, v cue.Value) (*Preset, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err, name, "cue", v.Pos())
	}

	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err, name, "preset", v.Pos())
	}

	p := &Preset{Name: name}
	o := &p.Options
	for iter.Next() {
		field := iter.Label()
		fv := iter.Value()

		var err error
		switch field {
		case "description":
			p.Description, err = fv.String()
		case "expression":
			o.Expression, err = fv.String()
		case "reroll":
			o.Reroll, err = fv.String()
		case "reroll_recursive":
			o.RerollRecursive, err = fv.Bool()
		case "explode":
			o.Explode, err = fv.String()
		case "explode_once":
			o.ExplodeOnce, err = fv.Bool()
		case "keep_high":
			o.KeepHigh, err = cueInt(fv)
		case "keep_low":
			o.KeepLow, err = cueInt(fv)
		case "drop_high":
			o.DropHigh, err = cueInt(fv)
		case "drop_low":
			o.DropLow, err = cueInt(fv)
		case "min":
			o.Min, err = cueInt(fv)
		case "max":
			o.Max, err = cueInt(fv)
		case "count_success":
			o.CountSuccess, err = fv.String()
		case "count_failure":
			o.CountFailure, err = fv.String()
		case "subtract_failures":
			o.SubtractFailures, err = fv.String()
		case "count_even":
			o.CountEven, err = fv.Bool()
		case "count_odd":
			o.CountOdd, err = fv.Bool()
		case "deduct_failure":
			o.DeductFailure, err = cueInt(fv)
		case "margin_of_success":
			o.MarginOfSuccess, err = cueInt(fv)
		default:
			return nil, &CompileError{Preset: name, Field: field, Message: "unknown field", Pos: fv.Pos()}
		}
		if err != nil {
			return nil, formatCUEError(err, name, field, fv.Pos())
		}
	}

	if p.Options.Expression == "" {
		return nil, &CompileError{Preset: name, Field: "expression", Message: "expression is required", Pos: v.Pos()}
	}
	return p, nil
}

func cueInt(v cue.Value) (int, error) {
	n, err := v.Int64()
	return int(n), err
}
