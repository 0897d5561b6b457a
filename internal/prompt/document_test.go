package prompt

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const roleA = `{"Writer":{"template":"Write about {topic}","vars":{"topic":"cats"}}}`

func TestNormalize_BothShapesAgree(t *testing.T) {
	legacy := Normalize(json.RawMessage(`{"roles":{"A":` + roleA + `}}`))
	current := Normalize(json.RawMessage(`{"A":` + roleA + `}`))

	assert.Equal(t, current, legacy)
	assert.Equal(t, []string{"A"}, current.Keys())

	def, err := Lookup(current, "A", "Writer")
	require.NoError(t, err)
	assert.Equal(t, "Write about {topic}", def.Template)
}

func TestDecodeDocument_Shape(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantShape Shape
		wantRoles []string
	}{
		{"legacy", `{"roles":{"A":{},"B":{}}}`, ShapeLegacy, []string{"A", "B"}},
		{"current", `{"B":{},"A":{}}`, ShapeCurrent, []string{"B", "A"}},
		{"legacy with null wrapper", `{"roles":null}`, ShapeLegacy, []string{}},
		{"legacy with extra members", `{"version":2,"roles":{"A":{}}}`, ShapeLegacy, []string{"A"}},
		{"not an object", `["A"]`, ShapeCurrent, []string{}},
		{"garbage", `{{`, ShapeCurrent, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := DecodeDocument(json.RawMessage(tt.raw))
			assert.Equal(t, tt.wantShape, doc.Shape)
			assert.Equal(t, tt.wantRoles, doc.Roles.Keys())
		})
	}
}

func TestNormalize_PreservesOrder(t *testing.T) {
	roles := Normalize(json.RawMessage(`{
		"🖋 寫作": {"短文": {"template": "a"}, "長文": {"template": "b"}},
		"💻 程式": {"除錯": {"template": "c"}}
	}`))

	require.Equal(t, []string{"🖋 寫作", "💻 程式"}, roles.Keys())
	tasks, _ := roles.Get("🖋 寫作")
	assert.Equal(t, []string{"短文", "長文"}, tasks.Keys())
}

func TestNormalize_MalformedShapesAreLenient(t *testing.T) {
	roles := Normalize(json.RawMessage(`{
		"Broken role": "not a task map",
		"Mixed": {
			"No template": {"vars": {"x": "1"}},
			"Odd vars": {"template": "{n} {flag} {list}", "vars": {"n": 3, "flag": true, "list": [1, "two", null]}},
			"Not object": 42,
			"Bad vars": {"template": "t", "vars": "oops"}
		}
	}`))

	broken, ok := roles.Get("Broken role")
	require.True(t, ok, "形状错误的角色仍然保留")
	assert.Equal(t, 0, broken.Len())

	def, err := Lookup(roles, "Mixed", "No template")
	require.NoError(t, err)
	assert.Equal(t, "", def.Template)

	def, err = Lookup(roles, "Mixed", "Odd vars")
	require.NoError(t, err)
	bindings := DefaultBindings(def)
	assert.Equal(t, "3", bindings["n"].Text())
	assert.Equal(t, "true", bindings["flag"].Text())
	assert.Equal(t, KindSelect, def.Variables()[2].Kind)
	assert.Equal(t, "3 true 1", BuildPrompt(def.Template, bindings))

	def, err = Lookup(roles, "Mixed", "Not object")
	require.NoError(t, err)
	assert.Equal(t, TaskDefinition{}, def)

	def, err = Lookup(roles, "Mixed", "Bad vars")
	require.NoError(t, err)
	assert.Equal(t, 0, def.Vars.Len())
}

func TestLookup_Missing(t *testing.T) {
	roles := Normalize(json.RawMessage(`{"A":` + roleA + `}`))

	_, err := Lookup(roles, "Z", "Writer")
	assert.True(t, errors.Is(err, ErrRoleNotFound))

	_, err = Lookup(roles, "A", "Reader")
	assert.True(t, errors.Is(err, ErrTaskNotFound))
}

func TestVariables(t *testing.T) {
	def := decodeTask(t, translateTask)
	vars := def.Variables()
	require.Len(t, vars, 3)

	assert.Equal(t, Variable{Name: "text", Label: "text", Kind: KindText, Spec: TextVar("Hello")}, vars[0])
	assert.Equal(t, "lang", vars[1].Label)
	assert.Equal(t, KindMulti, vars[1].Kind)
	assert.Equal(t, KindSelect, vars[2].Kind)
	assert.Equal(t, "Translation helper", def.Description)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindText, KindOf("x__multi", TextVar("a")), "文本默认值不算多选")
	assert.Equal(t, KindMulti, KindOf("x__multi", OptionsVar("a")))
	assert.Equal(t, KindSelect, KindOf("x", OptionsVar("a")))
	assert.Equal(t, "multi", KindMulti.String())
}

func TestTaskDefinition_Encode(t *testing.T) {
	def := decodeTask(t, translateTask)

	out, err := json.Marshal(def)
	require.NoError(t, err)
	assert.JSONEq(t, translateTask, string(out))

	y, err := yaml.Marshal(def)
	require.NoError(t, err)
	assert.Contains(t, string(y), "lang__multi:")
	assert.Contains(t, string(y), "- French")
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "lang", DisplayName("lang__multi"))
	assert.Equal(t, "ab__multi", DisplayName("a__multib__multi"), "只去掉第一个 __multi")
	assert.Equal(t, "plain", DisplayName("plain"))
}

func TestVariables_LabelOnlyStrippedForMulti(t *testing.T) {
	def := decodeTask(t, `{"template":"{note__multi} {x__multib__multi}","vars":{
		"note__multi": "text default",
		"x__multib__multi": ["a", "b"]
	}}`)
	vars := def.Variables()
	require.Len(t, vars, 2)

	assert.Equal(t, KindText, vars[0].Kind)
	assert.Equal(t, "note__multi", vars[0].Label, "文本参数保留原名")
	assert.Equal(t, KindMulti, vars[1].Kind)
	assert.Equal(t, "xb__multi", vars[1].Label)

	bindings, err := Bind(def, map[string]string{"xb__multi": "b"})
	require.NoError(t, err)
	assert.Equal(t, "text default b", BuildPrompt(def.Template, bindings))
}
