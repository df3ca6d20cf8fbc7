package domain

import "time"

// VoterStatus is the eligibility state of a voter
type VoterStatus string

const (
	VoterActive   VoterStatus = "active"
	VoterInactive VoterStatus = "inactive"
)

// VotingType tags the variant of a voting event
type VotingType string

const (
	VotingElection VotingType = "election"
	VotingJudgment VotingType = "judgment"
	VotingOption   VotingType = "option"
)

// IsCandidateBased reports whether choices of this type target a fixed roster
func (t VotingType) IsCandidateBased() bool {
	return t == VotingElection || t == VotingJudgment
}

// Voter represents a registered voter
type Voter struct {
	VoterID   string      `json:"voter_id"`
	UserID    string      `json:"-"` // Never include in JSON
	Alias     string      `json:"alias,omitempty"`
	Status    VoterStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// VotingDescription maps a locale code to localized text
type VotingDescription map[string]string

// Candidate is a roster entry of a candidate-based voting
type Candidate struct {
	CandidateID string `json:"candidate_id"`
	Alias       string `json:"alias,omitempty"`
}

// EvidenceType is the media type of a judgment evidence
type EvidenceType string

const (
	EvidenceText  EvidenceType = "text"
	EvidenceImage EvidenceType = "image"
)

// Evidence supports a judgment voting
type Evidence struct {
	Type EvidenceType `json:"type"`
	Data string       `json:"data"`
}

// ElectionDetails holds the election-specific fields of a voting
type ElectionDetails struct {
	Candidates           []Candidate `json:"candidates"`
	OnlyOneSelected      bool        `json:"only_one_selected"`
	MaxElectedCandidates *int        `json:"max_elected_candidates,omitempty"`
}

// JudgmentDetails holds the judgment-specific fields of a voting
type JudgmentDetails struct {
	Candidates []Candidate `json:"candidates"`
	Evidences  []Evidence  `json:"evidences,omitempty"`
}

// OptionDetails holds the option-poll-specific fields of a voting
type OptionDetails struct {
	Options         []string `json:"options"`
	OnlyOneSelected bool     `json:"only_one_selected"`
}

// VotingData represents a voting event. Exactly one of Election, Judgment
// or Option is set, matching VotingType.
type VotingData struct {
	VotingID                        string            `json:"voting_id"`
	VotingType                      VotingType        `json:"voting_type"`
	Description                     VotingDescription `json:"voting_description"`
	StartedBy                       string            `json:"started_by"`
	StartsAt                        time.Time         `json:"starts_at"`
	EndsAt                          time.Time         `json:"ends_at"`
	TotalVoters                     int               `json:"total_voters"`
	RequiredParticipationPercentage *float64          `json:"required_participation_percentage,omitempty"`
	CreatedAt                       time.Time         `json:"created_at"`
	UpdatedAt                       time.Time         `json:"updated_at"`

	Election *ElectionDetails `json:"election,omitempty"`
	Judgment *JudgmentDetails `json:"judgment,omitempty"`
	Option   *OptionDetails   `json:"option,omitempty"`
}

// Candidates returns the roster of a candidate-based voting, nil otherwise
func (v *VotingData) Candidates() []Candidate {
	switch v.VotingType {
	case VotingElection:
		if v.Election != nil {
			return v.Election.Candidates
		}
	case VotingJudgment:
		if v.Judgment != nil {
			return v.Judgment.Candidates
		}
	}
	return nil
}

// Targets returns the keys votes can be counted under: candidate ids or options
func (v *VotingData) Targets() []string {
	if v.VotingType == VotingOption {
		if v.Option == nil {
			return nil
		}
		return append([]string(nil), v.Option.Options...)
	}
	candidates := v.Candidates()
	targets := make([]string, 0, len(candidates))
	for _, c := range candidates {
		targets = append(targets, c.CandidateID)
	}
	return targets
}

// HasVariant reports whether the payload matching VotingType is present
func (v *VotingData) HasVariant() bool {
	switch v.VotingType {
	case VotingElection:
		return v.Election != nil
	case VotingJudgment:
		return v.Judgment != nil
	case VotingOption:
		return v.Option != nil
	}
	return false
}

// MaxElected returns the configured single-winner bound, or 0 when unbounded
func (v *VotingData) MaxElected() int {
	if v.VotingType == VotingElection && v.Election != nil && v.Election.MaxElectedCandidates != nil {
		return *v.Election.MaxElectedCandidates
	}
	return 0
}

// RequiredVotes is the quorum in votes: participation fraction times the voter snapshot
func (v *VotingData) RequiredVotes() float64 {
	if v.RequiredParticipationPercentage == nil {
		return 0
	}
	return *v.RequiredParticipationPercentage * float64(v.TotalVoters)
}

// HasEnded reports whether the voting window closed before now
func (v *VotingData) HasEnded(now time.Time) bool {
	return v.EndsAt.Before(now)
}

// ChoiceVerdict names the counter a candidate choice increments
type ChoiceVerdict string

const (
	ChoiceElect    ChoiceVerdict = "elect"
	ChoicePass     ChoiceVerdict = "pass"
	ChoiceGuilty   ChoiceVerdict = "guilty"
	ChoiceInnocent ChoiceVerdict = "innocent"
)

// Choice is one selection inside a vote. Candidate-based votings use
// CandidateID and Verdict, option votings use Value.
type Choice struct {
	CandidateID string        `json:"candidate_id,omitempty"`
	Verdict     ChoiceVerdict `json:"verdict,omitempty"`
	Value       string        `json:"value,omitempty"`
}

// CandidateChoice builds a choice for an election or judgment
func CandidateChoice(candidateID string, verdict ChoiceVerdict) Choice {
	return Choice{CandidateID: candidateID, Verdict: verdict}
}

// OptionChoice builds a choice for an option poll
func OptionChoice(value string) Choice {
	return Choice{Value: value}
}

// Accepts reports whether a choice names a counter that votings of this
// type keep
func (t VotingType) Accepts(c Choice) bool {
	switch t {
	case VotingElection:
		return c.CandidateID != "" && (c.Verdict == ChoiceElect || c.Verdict == ChoicePass)
	case VotingJudgment:
		return c.CandidateID != "" && (c.Verdict == ChoiceGuilty || c.Verdict == ChoiceInnocent)
	case VotingOption:
		return c.Value != "" && c.CandidateID == "" && c.Verdict == ""
	}
	return false
}

// VoteData represents a cast vote
type VoteData struct {
	VoteID    string    `json:"vote_id"`
	VotingID  string    `json:"voting_id"`
	VoterID   string    `json:"voter_id"`
	Choices   []Choice  `json:"choices"`
	CreatedAt time.Time `json:"created_at"`
}
