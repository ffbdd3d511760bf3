package alias

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// preferredOrder lists top-level keys written first, in this order.
var preferredOrder = []string{"_comment", "_usage", KeyTeamAliases, KeyLeagueAliases}

// Format renders doc as the maintainer-facing JSON layout: known keys first,
// alias entries sorted by canonical name then key (case-insensitive), and a
// blank line between groups of keys sharing a canonical name.
func Format(doc Document) []byte {
	extras := make(map[string]json.RawMessage, len(doc.Extra))
	var order []string
	for _, f := range doc.Extra {
		if _, seen := extras[f.Key]; !seen {
			order = append(order, f.Key)
		}
		extras[f.Key] = f.Value
	}

	var keys []string
	for _, k := range preferredOrder {
		if _, ok := extras[k]; ok || k == KeyTeamAliases || k == KeyLeagueAliases {
			keys = append(keys, k)
		}
	}
	for _, k := range order {
		if k != "_comment" && k != "_usage" {
			keys = append(keys, k)
		}
	}

	var b bytes.Buffer
	b.WriteString("{\n")
	for i, k := range keys {
		b.WriteString("  ")
		b.WriteString(quote(k))
		b.WriteString(": ")

		switch k {
		case KeyTeamAliases:
			writeGrouped(&b, doc.Teams)
		case KeyLeagueAliases:
			writeGrouped(&b, doc.Leagues)
		default:
			writeCompact(&b, extras[k])
		}

		if i < len(keys)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("}\n")
	return b.Bytes()
}

func writeGrouped(b *bytes.Buffer, entries []Entry) {
	if len(entries) == 0 {
		b.WriteString("{}")
		return
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, vj := strings.ToLower(sorted[i].Value), strings.ToLower(sorted[j].Value)
		if vi != vj {
			return vi < vj
		}
		return strings.ToLower(sorted[i].Key) < strings.ToLower(sorted[j].Key)
	})

	b.WriteString("{\n")
	prev := ""
	for i, e := range sorted {
		group := strings.ToLower(e.Value)
		if i > 0 && group != prev {
			b.WriteByte('\n')
		}
		prev = group

		b.WriteString("    ")
		b.WriteString(quote(e.Key))
		b.WriteString(": ")
		b.WriteString(quote(e.Value))
		if i < len(sorted)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("  }")
}

func writeCompact(b *bytes.Buffer, raw json.RawMessage) {
	var out bytes.Buffer
	if err := json.Compact(&out, raw); err != nil || out.Len() == 0 {
		b.WriteString("null")
		return
	}
	b.Write(out.Bytes())
}

// quote JSON-encodes s without HTML escaping so names stay readable.
func quote(s string) string {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(b.String(), "\n")
}
