// Package preset loads named roll presets.
//
// Presets are stored in CUE or YAML files. A CUE file declares presets
// under a top-level "preset" struct:
//
//	preset: "ability-score": {
//		description: "4d6 drop lowest"
//		expression:  "4d6"
//		drop_low:    1
//	}
//
// A YAML file uses a top-level "presets" mapping with the same fields.
// Field names match roll.Options. Unknown fields are errors.
package preset
