package model

type Organization struct {
	Id            int    `gorm:"primaryKey;autoIncrement"`
	OrgId         int    `gorm:"uniqueIndex;not null"` // public/business ID
	WalletAddress string `gorm:"not null"`             // 0x-prefixed, 40 hex chars
	OrgSalt       string `gorm:"not null"`             // decimal field element, generated once, immutable
}
