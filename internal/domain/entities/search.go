package entities

// SearchFilters narrows a nickname search
type SearchFilters struct {
	Query           string `form:"q" json:"query"`
	ExactMatch      bool   `form:"exact" json:"exactMatch"`
	IncludeInactive bool   `form:"includeInactive" json:"includeInactive"`
	Limit           int    `form:"limit" json:"limit"`
}

// NicknameSearchResult is one hit of a nickname search. IsActive marks the
// hit as the owning wallet's display nickname.
type NicknameSearchResult struct {
	WalletAddress string   `json:"walletAddress"`
	Nickname      string   `json:"nickname"`
	IsActive      bool     `json:"isActive"`
	AllNicknames  []string `json:"allNicknames"`
}
