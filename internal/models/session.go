package models

// Session 当前登录身份（仅用于展示）
type Session struct {
	Name string `json:"name"`
}
