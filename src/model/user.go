package model

type User struct {
	Id      int    `gorm:"primaryKey;autoIncrement"`
	UserId  int    `gorm:"uniqueIndex;not null"` // public/business ID
	BatchId string `gorm:"index;not null"`       // a user belongs to exactly one batch
	Balance int64  `gorm:"not null;default:0"`
	ZkpKey  string `gorm:"not null"` // proof-identity secret, never logged
}
