package dedup

import "fmt"

// TieBreak names one step of representative selection.
type TieBreak string

const (
	// TieBreakSourcePriority prefers sources listed earlier in
	// Policy.SourcePriority. Unlisted sources rank after every listed one.
	TieBreakSourcePriority TieBreak = "source_priority"
	// TieBreakCompleteness prefers the record with more populated fields.
	TieBreakCompleteness TieBreak = "completeness"
	// TieBreakFirstSeen prefers the record that came first in the input.
	TieBreakFirstSeen TieBreak = "first_seen"
)

// ParseTieBreak validates a tie-break name.
func ParseTieBreak(s string) (TieBreak, error) {
	switch tb := TieBreak(s); tb {
	case TieBreakSourcePriority, TieBreakCompleteness, TieBreakFirstSeen:
		return tb, nil
	}
	return "", fmt.Errorf("unknown tie-break %q", s)
}

// Policy controls grouping and merging.
type Policy struct {
	// SourcePriority lists source IDs, most trusted first.
	SourcePriority []string

	// TieBreaks is applied in order until two records differ. First-seen
	// order always ends the chain.
	TieBreaks []TieBreak

	// Symmetric treats A vs B and B vs A as the same fixture.
	Symmetric bool

	// MergeServers unions the group's server lists by URL.
	MergeServers bool

	// FillMissing copies empty optional fields from other group members.
	FillMissing bool

	// RequireDate drops records without a kickoff date.
	RequireDate bool

	// MergeOnly lists source IDs that can join a group but never open one.
	MergeOnly []string
}

// DefaultPolicy returns the policy used when nothing is configured.
func DefaultPolicy() Policy {
	return Policy{
		SourcePriority: []string{"manual", "flashscore", "adstrim", "bolaloca", "streamcenter"},
		TieBreaks:      []TieBreak{TieBreakSourcePriority, TieBreakCompleteness, TieBreakFirstSeen},
		MergeServers:   true,
		FillMissing:    true,
	}
}

// Validate checks the tie-break chain.
func (p Policy) Validate() error {
	seen := make(map[TieBreak]bool, len(p.TieBreaks))
	for _, tb := range p.TieBreaks {
		if _, err := ParseTieBreak(string(tb)); err != nil {
			return err
		}
		if seen[tb] {
			return fmt.Errorf("tie-break %q listed twice", tb)
		}
		seen[tb] = true
	}
	return nil
}
