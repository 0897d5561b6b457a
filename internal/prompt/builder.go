package prompt

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
)

// MultiSeparator 多选值的连接符，不随语言变化
const MultiSeparator = "、"

// BuildPrompt 将模板中的每个 {key} 替换为参数值
// 按键长从长到短依次替换，结果与 map 遍历顺序无关；没有参数的占位符保持原样
func BuildPrompt(template string, bindings Bindings) string {
	keys := make([]string, 0, len(bindings))
	for k := range bindings {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	out := template
	for _, key := range keys {
		out = strings.ReplaceAll(out, "{"+key+"}", bindings[key].Text())
	}
	return out
}

// Compose 输出模式前缀 + 替换后的模板
func Compose(prefix, template string, bindings Bindings) string {
	return prefix + BuildPrompt(template, bindings)
}

// DefaultBindings 参数默认值：文本使用默认文本，单选取第一个选项，多选全选
func DefaultBindings(def TaskDefinition) Bindings {
	bindings := make(Bindings, def.Vars.Len())
	for _, v := range def.Variables() {
		switch v.Kind {
		case KindMulti:
			bindings[v.Name] = Multi(v.Spec.Options...)
		case KindSelect:
			first := ""
			if len(v.Spec.Options) > 0 {
				first = v.Spec.Options[0]
			}
			bindings[v.Name] = Single(first)
		default:
			bindings[v.Name] = Single(v.Spec.Default)
		}
	}
	return bindings
}

// ErrUnknownVariable 任务没有该参数
var ErrUnknownVariable = errors.New("unknown variable")

// ErrInvalidOption 值不在选项中
var ErrInvalidOption = errors.New("value is not an option")

// Bind 在默认值上应用 overrides
// 键可以是参数名或去掉 __multi 的显示名；多选值用 "," 或 "、" 分隔
func Bind(def TaskDefinition, overrides map[string]string) (Bindings, error) {
	bindings := DefaultBindings(def)
	vars := def.Variables()

	for key, raw := range overrides {
		v, ok := findVariable(vars, key)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownVariable, key)
		}

		switch v.Kind {
		case KindMulti:
			items := splitMulti(raw)
			for _, item := range items {
				if !slices.Contains(v.Spec.Options, item) {
					return nil, fmt.Errorf("%w: %s=%q", ErrInvalidOption, v.Label, item)
				}
			}
			bindings[v.Name] = Multi(items...)
		case KindSelect:
			if !slices.Contains(v.Spec.Options, raw) {
				return nil, fmt.Errorf("%w: %s=%q", ErrInvalidOption, v.Label, raw)
			}
			bindings[v.Name] = Single(raw)
		default:
			bindings[v.Name] = Single(raw)
		}
	}
	return bindings, nil
}

func findVariable(vars []Variable, key string) (Variable, bool) {
	for _, v := range vars {
		if v.Name == key {
			return v, true
		}
	}
	for _, v := range vars {
		if v.Label == key {
			return v, true
		}
	}
	return Variable{}, false
}

func splitMulti(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '、'
	})
	items := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			items = append(items, f)
		}
	}
	return items
}
