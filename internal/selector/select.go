// Package selector chooses a concrete format for a quality constraint.
// Selection is a pure function: identical inputs always yield the identical
// chosen format, making it safely reentrant.
package selector

import (
	"sort"

	"ytgrab/internal/dlerr"
	"ytgrab/internal/model"
)

// Select maps the available formats and a quality constraint to a single
// format. Candidates are filtered to the constraint's category, then ranked
// by height descending, bitrate descending, and provider order as the final
// stable tie-break. An at-most-height constraint is advisory: when every
// candidate sits above the requested height, the lowest-height candidate is
// chosen rather than failing.
func Select(formats []model.FormatInfo, c model.QualityConstraint) (model.FormatInfo, error) {
	if len(formats) == 0 {
		return model.FormatInfo{}, dlerr.New(dlerr.KindFormatNotFound, "no formats available")
	}

	candidates := filterCategory(formats, c)
	if len(candidates) == 0 {
		return model.FormatInfo{}, dlerr.Newf(dlerr.KindFormatNotFound,
			"no %s format available", categoryName(c)).
			WithHint("try a different quality setting")
	}

	if c.Mode == model.ModeMaxHeight {
		capped := make([]model.FormatInfo, 0, len(candidates))
		for _, f := range candidates {
			if f.Height <= c.MaxHeight {
				capped = append(capped, f)
			}
		}
		if len(capped) == 0 {
			// Closest-below fallback: everything exceeds the cap, so
			// take the lowest resolution on offer.
			return lowestHeight(candidates), nil
		}
		candidates = capped
	}

	return rank(candidates)[0], nil
}

// filterCategory keeps candidates matching the constraint's category.
// "Best available" considers every format.
func filterCategory(formats []model.FormatInfo, c model.QualityConstraint) []model.FormatInfo {
	out := make([]model.FormatInfo, 0, len(formats))
	for _, f := range formats {
		switch c.Mode {
		case model.ModeAudioOnly:
			if f.IsAudioOnly() {
				out = append(out, f)
			}
		case model.ModeMaxHeight:
			if f.HasVideo() {
				out = append(out, f)
			}
		default:
			out = append(out, f)
		}
	}
	return out
}

// rank orders candidates best-first: height desc, bitrate desc, provider
// order preserved among equals. Unknown (zero) values sort lowest.
func rank(candidates []model.FormatInfo) []model.FormatInfo {
	ranked := make([]model.FormatInfo, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Height != ranked[j].Height {
			return ranked[i].Height > ranked[j].Height
		}
		return ranked[i].BitrateBps > ranked[j].BitrateBps
	})
	return ranked
}

// lowestHeight picks the single lowest-resolution candidate, breaking height
// ties by bitrate descending then provider order.
func lowestHeight(candidates []model.FormatInfo) model.FormatInfo {
	ranked := rank(candidates)
	best := ranked[len(ranked)-1]
	for i := len(ranked) - 2; i >= 0; i-- {
		if ranked[i].Height != best.Height {
			break
		}
		best = ranked[i]
	}
	return best
}

func categoryName(c model.QualityConstraint) string {
	switch c.Mode {
	case model.ModeAudioOnly:
		return "audio-only"
	case model.ModeMaxHeight:
		return "video"
	default:
		return "suitable"
	}
}
