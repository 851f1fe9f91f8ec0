package model

import "strings"

type CodeforcesProblem struct {
	ID         string `gorm:"column:id;type:varchar(32);primaryKey"`
	Url        string `gorm:"column:url;type:varchar(255);not null"`
	Difficulty int    `gorm:"column:difficulty;type:int;default:0;index:idx_codeforces_problems_difficulty"`
	Tags       string `gorm:"column:tags;type:varchar(512);default:'';comment:标签,逗号分隔"`
}

func (c *CodeforcesProblem) TableName() string {
	return "codeforces_problems"
}

// TagList 拆出标签列表
func (c *CodeforcesProblem) TagList() []string {
	if c.Tags == "" {
		return nil
	}
	parts := strings.Split(c.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// HasTags 判断题目是否覆盖全部要求的标签
func (c *CodeforcesProblem) HasTags(required []string) bool {
	if len(required) == 0 {
		return true
	}
	owned := make(map[string]struct{})
	for _, t := range c.TagList() {
		owned[t] = struct{}{}
	}
	for _, t := range required {
		if _, ok := owned[t]; !ok {
			return false
		}
	}
	return true
}
