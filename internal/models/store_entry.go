package models

// StoreEntry 客户端持久化键值
type StoreEntry struct {
	Key   string `gorm:"primarykey;type:varchar(64)" json:"key"` // 存储键
	Value string `gorm:"type:text;not null" json:"value"`        // JSON 编码后的值
}

// TableName 指定表名
func (StoreEntry) TableName() string {
	return "client_store"
}
