// Package prompt 解析模组库文档并用参数替换模板中的 {占位符}
package prompt

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/HFBDGD/prompt-copilot/internal/utils"
)

// WrapperField 旧版文档用该字段包装类别表
const WrapperField = "roles"

// Shape 模组库文档格式
type Shape int

const (
	// ShapeCurrent 类别表在顶层
	ShapeCurrent Shape = iota
	// ShapeLegacy 类别表在 roles 字段中
	ShapeLegacy
)

func (s Shape) String() string {
	if s == ShapeLegacy {
		return "legacy"
	}
	return "current"
}

type Document struct {
	Shape Shape
	Roles RoleMap
}

// DecodeDocument 解析任一格式的文档
// 只要存在 roles 字段（无论值是什么）就按旧版处理；不是 JSON 对象时返回空类别表
func DecodeDocument(raw json.RawMessage) Document {
	members, err := utils.DecodeObject(raw)
	if err != nil {
		return Document{Shape: ShapeCurrent}
	}

	for _, m := range members {
		if m.Key == WrapperField {
			return Document{Shape: ShapeLegacy, Roles: decodeRoleMap(m.Value)}
		}
	}
	return Document{Shape: ShapeCurrent, Roles: roleMapFromMembers(members)}
}

// Normalize 返回文档的类别表
func Normalize(raw json.RawMessage) RoleMap {
	return DecodeDocument(raw).Roles
}

func decodeRoleMap(raw json.RawMessage) RoleMap {
	members, err := utils.DecodeObject(raw)
	if err != nil {
		return RoleMap{}
	}
	return roleMapFromMembers(members)
}

func roleMapFromMembers(members []utils.Member) RoleMap {
	var roles RoleMap
	for _, m := range members {
		var tasks TaskMap
		if err := json.Unmarshal(m.Value, &tasks); err != nil {
			tasks = TaskMap{}
		}
		roles.Set(m.Key, tasks)
	}
	return roles
}

var (
	ErrRoleNotFound = errors.New("role not found")
	ErrTaskNotFound = errors.New("task not found")
)

// Lookup 按类别和任务名称查找任务
func Lookup(roles RoleMap, role, task string) (TaskDefinition, error) {
	tasks, ok := roles.Get(role)
	if !ok {
		return TaskDefinition{}, fmt.Errorf("%w: %s", ErrRoleNotFound, role)
	}
	def, ok := tasks.Get(task)
	if !ok {
		return TaskDefinition{}, fmt.Errorf("%w: %s / %s", ErrTaskNotFound, role, task)
	}
	return def, nil
}
