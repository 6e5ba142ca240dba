package entity

// ProspectCriteria は新規スポンサー候補企業を探すための条件です。すべて任意です。
type ProspectCriteria struct {
	Industry string
	Size     string
	Sector   string
	Location string
	Vibe     string
	Details  string
	Count    int
}

// ProspectCandidate はLLMが提案した候補企業です。
type ProspectCandidate struct {
	Name          string `json:"name"`
	Website       string `json:"website"`
	Email         string `json:"email"`
	Description   string `json:"description"`
	ContactPerson string `json:"contact_person"`
	Industry      string `json:"industry"`
	Location      string `json:"location"`
	Size          string `json:"size"`
	Type          string `json:"type"`
}

// ProspectResult は候補企業の登録結果です。
type ProspectResult struct {
	CreatedIDs []uint
	Created    []ProspectCandidate
	Skipped    int
}
