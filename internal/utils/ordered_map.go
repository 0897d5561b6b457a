package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrNotObject JSON 值不是对象
var ErrNotObject = errors.New("json value is not an object")

// Member JSON 对象的一个成员，Value 保留原始字节
type Member struct {
	Key   string
	Value json.RawMessage
}

// DecodeObject 按出现顺序解析 JSON 对象的顶层成员
// 重复的键保留第一次出现的位置、最后一次出现的值
func DecodeObject(data []byte) ([]Member, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotObject
	}

	members := []Member{}
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("对象键类型无效: %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("解析键 %q 的值失败: %w", key, err)
		}

		if i, exists := index[key]; exists {
			members[i].Value = raw
			continue
		}
		index[key] = len(members)
		members = append(members, Member{Key: key, Value: raw})
	}

	// 读取结束的 '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("json object has trailing data")
	}

	return members, nil
}

// OrderedMap 保持插入顺序的字符串键映射，JSON 解码时沿用对象中的键顺序
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// Set 写入键值；已存在的键保持原位置
func (m *OrderedMap[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get 读取键值
func (m OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has 判断键是否存在
func (m OrderedMap[V]) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Keys 按插入顺序返回所有键（副本）
func (m OrderedMap[V]) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len 返回键数量
func (m OrderedMap[V]) Len() int {
	return len(m.keys)
}

// UnmarshalJSON 实现 json.Unmarshaler
func (m *OrderedMap[V]) UnmarshalJSON(data []byte) error {
	m.keys = nil
	m.values = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	members, err := DecodeObject(data)
	if err != nil {
		return err
	}
	for _, member := range members {
		var v V
		if err := json.Unmarshal(member.Value, &v); err != nil {
			return fmt.Errorf("解析键 %q 失败: %w", member.Key, err)
		}
		m.Set(member.Key, v)
	}
	return nil
}

// MarshalJSON 按键顺序输出 JSON 对象
func (m OrderedMap[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, fmt.Errorf("序列化键 %q 失败: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML 按键顺序输出 YAML 映射
func (m OrderedMap[V]) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range m.keys {
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(m.values[key]); err != nil {
			return nil, fmt.Errorf("序列化键 %q 失败: %w", key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			valueNode,
		)
	}
	return node, nil
}
