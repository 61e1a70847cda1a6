package rossum

import (
	"sort"
	"strings"
)

// Raw extraction output may contain several entries sharing one name: either
// competing hypotheses at different confidence scores, or genuinely repeated
// values such as address lines. DeduplicateFields collapses each name group
// into its canonical entries.
//
// Policies, keyed by name:
//
//   - "tax_details": every entry survives, but its nested content is
//     deduplicated recursively.
//   - names containing "_addrline": one entry per distinct value, the
//     highest-scoring among entries sharing that value.
//   - everything else: the single highest-scoring entry.
//
// The function is pure and deterministic: groups are emitted in ascending
// name order, entries within a group are compared after a stable ascending
// sort by score, so among equal scores the later occurrence wins. A group
// mixing composite and leaf entries is not produced by the service; if it
// occurs, composites compare with score zero and lose to any scored leaf.
func DeduplicateFields(fields []Field) []Field {
	if len(fields) == 0 {
		return []Field{}
	}

	groups := make(map[string][]Field)
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := groups[f.Name]; !ok {
			names = append(names, f.Name)
		}
		groups[f.Name] = append(groups[f.Name], f)
	}
	sort.Strings(names)

	out := make([]Field, 0, len(names))
	for _, name := range names {
		out = append(out, deduplicateGroup(name, groups[name])...)
	}
	return out
}

const taxDetailsName = "tax_details"

// multiValueMarker tags fields that legitimately repeat, e.g. the lines of a
// postal address.
const multiValueMarker = "_addrline"

func deduplicateGroup(name string, group []Field) []Field {
	switch {
	case name == taxDetailsName:
		return deduplicateComposite(group)
	case strings.Contains(name, multiValueMarker):
		return deduplicateMultiValue(group)
	default:
		return deduplicateSingleValue(group)
	}
}

// deduplicateComposite keeps every entry but canonicalizes its content.
func deduplicateComposite(group []Field) []Field {
	out := make([]Field, 0, len(group))
	for _, item := range group {
		item.Content = DeduplicateFields(item.Content)
		out = append(out, item)
	}
	return out
}

// deduplicateSingleValue collapses the group to its best-scoring entry.
func deduplicateSingleValue(group []Field) []Field {
	s := sortedByScore(group)
	return []Field{s[len(s)-1]}
}

// deduplicateMultiValue keeps one entry per distinct value, each the
// best-scoring among the duplicates of that value.
func deduplicateMultiValue(group []Field) []Field {
	byValue := make(map[string][]Field)
	values := make([]string, 0, len(group))
	for _, f := range group {
		if _, ok := byValue[f.Value]; !ok {
			values = append(values, f.Value)
		}
		byValue[f.Value] = append(byValue[f.Value], f)
	}
	sort.Strings(values)

	out := make([]Field, 0, len(values))
	for _, v := range values {
		out = append(out, deduplicateSingleValue(byValue[v])...)
	}
	return out
}

func sortedByScore(group []Field) []Field {
	s := make([]Field, len(group))
	copy(s, group)
	sort.SliceStable(s, func(i, j int) bool { return s[i].Score < s[j].Score })
	return s
}
