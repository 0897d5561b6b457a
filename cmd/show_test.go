package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestShowCommandText(t *testing.T) {
	setupCatalog(t)

	stdout, _, err := execute(t, t.TempDir(), "show", "1", "Writer", "Translate")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{
		"寫作助手 › Writer › Translate",
		"說明: Translation helper",
		`text             text   = "Hello"`,
		"lang             multi  [French, German]",
		"tone             select [formal, casual]",
		"Translate {text} into {lang__multi} with {tone}",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("show 输出缺少 %q:\n%s", want, stdout)
		}
	}
}

func TestShowCommandStructured(t *testing.T) {
	setupCatalog(t)
	dir := t.TempDir()

	stdout, _, err := execute(t, dir, "show", "1", "1", "1", "--output", "json")
	if err != nil {
		t.Fatalf("show json: %v", err)
	}
	var view taskView
	if err := json.Unmarshal([]byte(stdout), &view); err != nil {
		t.Fatalf("parse json output: %v\n%s", err, stdout)
	}
	if view.Task != "Translate" || len(view.Variables) != 3 {
		t.Fatalf("unexpected view: %+v", view)
	}
	if v := view.Variables[1]; v.Name != "lang__multi" || v.Label != "lang" || v.Kind != "multi" {
		t.Fatalf("unexpected multi variable: %+v", v)
	}

	stdout, _, err = execute(t, dir, "show", "1", "1", "1", "-o", "yaml")
	if err != nil {
		t.Fatalf("show yaml: %v", err)
	}
	var fromYAML taskView
	if err := yaml.Unmarshal([]byte(stdout), &fromYAML); err != nil {
		t.Fatalf("parse yaml output: %v\n%s", err, stdout)
	}
	if fromYAML.Template != view.Template || fromYAML.Variables[2].Options[1] != "casual" {
		t.Fatalf("yaml and json disagree: %+v", fromYAML)
	}

	_, _, err = execute(t, dir, "show", "1", "1", "1", "--output", "xml")
	if err == nil || !strings.Contains(err.Error(), "不支持的输出格式") {
		t.Fatalf("expected unsupported format error, got: %v", err)
	}
}

func TestShowCommandMissingTask(t *testing.T) {
	setupCatalog(t)
	_, _, err := execute(t, t.TempDir(), "show", "1", "Writer", "9")
	if err == nil || !strings.Contains(err.Error(), "任务不存在") {
		t.Fatalf("expected missing task error, got: %v", err)
	}
}
