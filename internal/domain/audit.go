package domain

import "time"

// AuditLog is a record of a sensitive operation (audit_logs table)
type AuditLog struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID     string    `gorm:"column:user_id;type:varchar(36);index" json:"user_id"`
	Action     string    `gorm:"column:action;type:varchar(64);index" json:"action"`
	Resource   string    `gorm:"column:resource;type:varchar(64)" json:"resource"`
	ResourceID string    `gorm:"column:resource_id;type:varchar(64);index" json:"resource_id"`
	Details    string    `gorm:"column:details;type:text" json:"details"`
	ClientIP   string    `gorm:"column:client_ip;type:varchar(64)" json:"client_ip"`
	UserAgent  string    `gorm:"column:user_agent;type:varchar(255)" json:"user_agent"`
	RequestID  string    `gorm:"column:request_id;type:varchar(64)" json:"request_id"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

// TableName returns the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// AuditFilter narrows the audit log listing
type AuditFilter struct {
	UserID     string
	Action     string
	ResourceID string
	Page       int
	Limit      int
}
