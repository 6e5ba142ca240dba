// Package entity はoutreachフィーチャーのドメインモデルを定義します。
package entity

import "time"

// TimestampLayout はキャッシュファイルに記録するタイムスタンプの書式です。
const TimestampLayout = "2006-01-02 15:04:05"

// Timestamp は現在時刻をキャッシュ用の書式で返します。
func Timestamp(now time.Time) string {
	return now.Format(TimestampLayout)
}

// SearchResult は検索APIの1件の結果です。
type SearchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// CompanyResearch は企業調査の結果です。キャッシュ種別 "company" で保存されます。
type CompanyResearch struct {
	CompanyInfo string `json:"company_info"`
	Timestamp   string `json:"timestamp"`
	QueryCount  int    `json:"query_count"`
}

// ContactProfile は意思決定者1名分のプロファイルです。
type ContactProfile struct {
	Name               string `json:"name"`
	Role               string `json:"role"`
	Profile            string `json:"profile"`
	CommunicationStyle string `json:"communication_style"`
	Connections        string `json:"connections"`
}

// ContactProfiles は企業ごとの意思決定者プロファイル一覧です。キャッシュ種別 "contacts" で保存されます。
type ContactProfiles struct {
	Profiles  []ContactProfile `json:"profiles"`
	Timestamp string           `json:"timestamp"`
}

// PartnershipAnalysis はスポンサーシップ適合性の分析結果です。
type PartnershipAnalysis struct {
	PartnershipAnalysis string `json:"partnership_analysis"`
	ValuePropositions   string `json:"value_propositions"`
}

// PartnershipRecord はキャッシュ種別 "partnership" の保存形式です。
type PartnershipRecord struct {
	Analysis  PartnershipAnalysis `json:"analysis"`
	Timestamp string              `json:"timestamp"`
}

// CulturalAssessment は企業文化とコミュニケーションスタイルの評価です。
type CulturalAssessment struct {
	LanguageAnalysis string `json:"language_analysis"`
	DecisionStyle    string `json:"decision_style"`
	CulturalValues   string `json:"cultural_values"`
	Recommendations  string `json:"recommendations"`
}

// CultureRecord はキャッシュ種別 "culture" の保存形式です。
type CultureRecord struct {
	Assessment CulturalAssessment `json:"assessment"`
	Timestamp  string             `json:"timestamp"`
}

// RelationshipIntelligence は意思決定者・パートナーシップ・文化の分析をまとめたものです。
type RelationshipIntelligence struct {
	DecisionMakers []ContactProfile
	Partnership    PartnershipAnalysis
	Culture        CulturalAssessment
}
