package domain

import "time"

// Idempotency records a vote delta that was already applied under a client
// supplied Idempotency-Key, keyed by (article_id, key). A retried PATCH with
// the same key is answered from the current row without applying the delta
// again.
type Idempotency struct {
	ID        string    `gorm:"type:TEXT NOT NULL;primaryKey"` // uuid
	ArticleID int64     `gorm:"type:INTEGER NOT NULL;uniqueIndex:ux_article_key,priority:1"`
	Key       string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_article_key,priority:2"`
	Delta     int64     `gorm:"type:INTEGER NOT NULL"`
	CreatedAt time.Time `gorm:"type:DATETIME NOT NULL;autoCreateTime"`
	ExpiresAt time.Time `gorm:"type:DATETIME NOT NULL;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
