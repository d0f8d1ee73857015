// Package entity 定义领域实体
package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSlice 可存储为 JSONB 的字符串切片
type StringSlice []string

// Value 实现 driver.Valuer
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

// Scan 实现 sql.Scanner
func (s *StringSlice) Scan(src interface{}) error {
	return scanJSON(src, s)
}

// Contains 判断是否包含指定元素
func (s StringSlice) Contains(v string) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}

// JSONMap 可存储为 JSONB 的开放键值载荷
type JSONMap map[string]interface{}

// Value 实现 driver.Valuer
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan 实现 sql.Scanner
func (m *JSONMap) Scan(src interface{}) error {
	return scanJSON(src, m)
}

// IntMap 可存储为 JSONB 的整型键值映射（按阵营对记录紧张度增量）
type IntMap map[string]int

// Value 实现 driver.Valuer
func (m IntMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan 实现 sql.Scanner
func (m *IntMap) Scan(src interface{}) error {
	return scanJSON(src, m)
}

// scanJSON 从数据库值反序列化 JSON
func scanJSON(src interface{}, dst interface{}) error {
	if src == nil {
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported scan source type %T", src)
	}
}
