package domain

// Table is a mongo collection name
type Table string

const (
	TableAccounts   Table = "accounts"
	TableListings   Table = "listings"
	TableOffers     Table = "offers"
	TableAuctions   Table = "auctions"
	TablePayTokens  Table = "pay_tokens"
	TableActivities Table = "activities"
)
