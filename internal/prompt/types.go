package prompt

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cast"

	"github.com/HFBDGD/prompt-copilot/internal/utils"
)

// MultiSuffix 带该后缀的选项参数为多选
const MultiSuffix = "__multi"

// RoleMap 类别 → 任务表，保持文档顺序
type RoleMap = utils.OrderedMap[TaskMap]

// TaskMap 任务名称 → 任务定义
type TaskMap = utils.OrderedMap[TaskDefinition]

// TaskDefinition 任务：模板、参数默认值和说明
type TaskDefinition struct {
	Template    string                    `json:"template" yaml:"template"`
	Vars        utils.OrderedMap[VarSpec] `json:"vars" yaml:"vars"`
	Description string                    `json:"description,omitempty" yaml:"description,omitempty"`
}

// UnmarshalJSON 宽松解析，类型不对的字段取零值而不报错
func (d *TaskDefinition) UnmarshalJSON(data []byte) error {
	*d = TaskDefinition{}

	members, err := utils.DecodeObject(data)
	if err != nil {
		return nil
	}
	for _, m := range members {
		switch m.Key {
		case "template":
			d.Template = looseString(m.Value)
		case "description":
			d.Description = looseString(m.Value)
		case "vars":
			var vars utils.OrderedMap[VarSpec]
			if err := json.Unmarshal(m.Value, &vars); err == nil {
				d.Vars = vars
			}
		}
	}
	return nil
}

// VarSpec 参数定义：字符串为文本默认值，数组为选项列表
type VarSpec struct {
	Default string
	Options []string
	list    bool
}

func TextVar(def string) VarSpec {
	return VarSpec{Default: def}
}

func OptionsVar(options ...string) VarSpec {
	return VarSpec{Options: append([]string{}, options...), list: true}
}

// IsList 是否为选项列表
func (s VarSpec) IsList() bool {
	return s.list
}

func (s *VarSpec) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if items, ok := raw.([]interface{}); ok {
		*s = VarSpec{Options: cast.ToStringSlice(items), list: true}
		return nil
	}
	*s = VarSpec{Default: cast.ToString(raw)}
	return nil
}

func (s VarSpec) MarshalJSON() ([]byte, error) {
	if s.list {
		opts := s.Options
		if opts == nil {
			opts = []string{}
		}
		return json.Marshal(opts)
	}
	return json.Marshal(s.Default)
}

func (s VarSpec) MarshalYAML() (interface{}, error) {
	if s.list {
		return s.Options, nil
	}
	return s.Default, nil
}

// Kind 参数对应的输入控件
type Kind int

const (
	KindText Kind = iota
	KindSelect
	KindMulti
)

func (k Kind) String() string {
	switch k {
	case KindSelect:
		return "select"
	case KindMulti:
		return "multi"
	default:
		return "text"
	}
}

// KindOf 只有名称带 __multi 后缀的选项列表是多选，其他列表为单选
func KindOf(name string, spec VarSpec) Kind {
	switch {
	case spec.IsList() && strings.HasSuffix(name, MultiSuffix):
		return KindMulti
	case spec.IsList():
		return KindSelect
	default:
		return KindText
	}
}

// DisplayName 多选参数的显示名：去掉名称中第一个 __multi
func DisplayName(name string) string {
	return strings.Replace(name, MultiSuffix, "", 1)
}

// Variable 界面展示的参数
type Variable struct {
	Name  string
	Label string
	Kind  Kind
	Spec  VarSpec
}

// Variables 按文档顺序列出参数
func (d TaskDefinition) Variables() []Variable {
	vars := make([]Variable, 0, d.Vars.Len())
	for _, name := range d.Vars.Keys() {
		spec, _ := d.Vars.Get(name)
		kind := KindOf(name, spec)
		label := name
		if kind == KindMulti {
			label = DisplayName(name)
		}
		vars = append(vars, Variable{
			Name:  name,
			Label: label,
			Kind:  kind,
			Spec:  spec,
		})
	}
	return vars
}

// Value 参数值：单个字符串或多选的有序列表
type Value struct {
	text  string
	items []string
	multi bool
}

func Single(s string) Value {
	return Value{text: s}
}

func Multi(items ...string) Value {
	return Value{items: append([]string{}, items...), multi: true}
}

func (v Value) IsMulti() bool {
	return v.multi
}

func (v Value) Items() []string {
	if v.multi {
		return append([]string{}, v.items...)
	}
	return []string{v.text}
}

// Text 替换到模板中的文本
func (v Value) Text() string {
	if v.multi {
		return strings.Join(v.items, MultiSeparator)
	}
	return v.text
}

// Bindings 参数名（含 __multi 后缀）→ 参数值
type Bindings map[string]Value

func looseString(raw json.RawMessage) string {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	return cast.ToString(v)
}
