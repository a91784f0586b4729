package model

import (
	"bytes"
	"encoding/json"
)

// NotFound 报告中未找到字段时的显示文本
const NotFound = "Not found"

// Field 单个字段
type Field struct {
	Key   string // 字段键 (如 Aadhar_Number)，下游报告依赖该名称
	Label string // 显示名称 (如 Aadhar Number)
	Value string // 字段值，Found 为 false 时为空
	Found bool   // 是否找到
}

// Display 返回报告显示值
func (f Field) Display() string {
	if !f.Found {
		return NotFound
	}
	return f.Value
}

// FieldMap 有序字段表
// 所有预定义键始终存在，缺失值通过 Found=false 表示，不会删除键
type FieldMap struct {
	fields []Field
	index  map[string]int
}

// FieldSpec 字段定义
type FieldSpec struct {
	Key   string
	Label string
}

// NewFieldMap 按字段定义顺序创建字段表，所有字段初始为未找到
func NewFieldMap(specs ...FieldSpec) *FieldMap {
	m := &FieldMap{
		fields: make([]Field, 0, len(specs)),
		index:  make(map[string]int, len(specs)),
	}
	for _, s := range specs {
		if _, dup := m.index[s.Key]; dup {
			continue
		}
		label := s.Label
		if label == "" {
			label = s.Key
		}
		m.index[s.Key] = len(m.fields)
		m.fields = append(m.fields, Field{Key: s.Key, Label: label})
	}
	return m
}

// Set 设置字段值；空值保持未找到。未定义的键被忽略
func (m *FieldMap) Set(key, value string) {
	i, ok := m.index[key]
	if !ok || value == "" {
		return
	}
	m.fields[i].Value = value
	m.fields[i].Found = true
}

// Get 获取字段值
func (m *FieldMap) Get(key string) (string, bool) {
	i, ok := m.index[key]
	if !ok || !m.fields[i].Found {
		return "", false
	}
	return m.fields[i].Value, true
}

// Value 获取字段值，未找到返回空串
func (m *FieldMap) Value(key string) string {
	v, _ := m.Get(key)
	return v
}

// Has 是否定义了该键
func (m *FieldMap) Has(key string) bool {
	_, ok := m.index[key]
	return ok
}

// Keys 按顺序返回全部键
func (m *FieldMap) Keys() []string {
	keys := make([]string, len(m.fields))
	for i, f := range m.fields {
		keys[i] = f.Key
	}
	return keys
}

// Fields 返回字段副本
func (m *FieldMap) Fields() []Field {
	out := make([]Field, len(m.fields))
	copy(out, m.fields)
	return out
}

// Len 字段数量
func (m *FieldMap) Len() int {
	return len(m.fields)
}

// MissingKeys 返回未找到的键
func (m *FieldMap) MissingKeys() []string {
	var missing []string
	for _, f := range m.fields {
		if !f.Found {
			missing = append(missing, f.Key)
		}
	}
	return missing
}

// FoundCount 已找到的字段数
func (m *FieldMap) FoundCount() int {
	n := 0
	for _, f := range m.fields {
		if f.Found {
			n++
		}
	}
	return n
}

// MarshalJSON 按字段顺序输出对象，未找到的字段输出 null
func (m *FieldMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range m.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if !f.Found {
			buf.WriteString("null")
			continue
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
