package usecase

import (
	"outreach_backend/internal/feature/outreach/domain/entity"
)

// Settings はパイプライン全体の設定です。app/config から組み立てられます。
type Settings struct {
	Identity entity.SenderIdentity
	// ConnectionFocus は意思決定者とのつながりを調べる追加の分野です（例: "Hyperloop or tunnel boring technology"）。
	ConnectionFocus []string
	ClubQuestions   []string
	ResultsPerQuery int
	MaxContacts     int
	RetrievalK      int
	Sampling        Sampling
}

// DefaultSettings はデフォルト設定を返します。
func DefaultSettings() Settings {
	return Settings{
		Identity: entity.SenderIdentity{
			Name:           "Matis",
			Role:           "Business Development Lead",
			Club:           "CU Hyperloop",
			Affiliation:    "University of Colorado Boulder",
			Intro:          "My name is Matis, and I am the Business Development Lead for CU Hyperloop",
			IntroParagraph: "My name is Matis, and I am the Business Development Lead for CU Hyperloop, a dynamic student team at the University of Colorado Boulder that every year designs and builds an innovative tunnel boring machine. Last year, our 12-ft long, 2000lb TBM earned us 2nd place in the world at the Boring Company's Not-A-Boring Competition, and we're poised to push even further this year.",
			DefaultSubject: "Partnership with CU Hyperloop",
			Pitch:          "As a sponsor, your company would receive logo placement on our machine and materials, recognition at competitions, and access to talented engineering students.",
		},
		ConnectionFocus: []string{"Hyperloop or tunnel boring technology"},
		ClubQuestions: []string{
			"What does the club do every single year and what do they compete in?",
			"What is the mission and key goals of the club?",
			"What are the main achievements and history of the club?",
			"How are the team members organized into functional groups?",
			"What sponsorship tiers does the club offer?",
			"What kind of recognition do sponsors receive?",
			"If there are 4 main things that the club can provide value with to a sponsor what are they and how do they provide value?",
			"What are the key benefits for sponsors to support the club, and how have past sponsors benefited from their involvement or been recognized?",
		},
		ResultsPerQuery: 3,
		MaxContacts:     3,
		RetrievalK:      5,
		Sampling:        Sampling{Temperature: 0.2},
	}
}

// withDefaults はゼロ値の項目をデフォルト値で補います。
func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.Identity == (entity.SenderIdentity{}) {
		s.Identity = d.Identity
	}
	if s.ResultsPerQuery <= 0 {
		s.ResultsPerQuery = d.ResultsPerQuery
	}
	if s.MaxContacts <= 0 {
		s.MaxContacts = d.MaxContacts
	}
	if s.RetrievalK <= 0 {
		s.RetrievalK = d.RetrievalK
	}
	if len(s.ClubQuestions) == 0 {
		s.ClubQuestions = d.ClubQuestions
	}
	return s
}
