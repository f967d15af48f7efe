package models

// Slot is one named value in the key-value persistence table.
// It corresponds to the 'slots' table.
type Slot struct {
	Key       string `gorm:"primaryKey;column:slot_key" json:"key"`
	Value     []byte `gorm:"not null" json:"-"`
	UpdatedAt int64  `gorm:"not null" json:"updated_at"` // Unix timestamp
}

// TableName explicitly sets the table name for GORM.
func (Slot) TableName() string {
	return "slots"
}
