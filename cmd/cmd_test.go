package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/spigell/fqhc-resume/internal/ai"
	"github.com/spigell/fqhc-resume/internal/catalog"
	"github.com/spigell/fqhc-resume/internal/content"
	"github.com/spigell/fqhc-resume/internal/recommend"
	"github.com/spigell/fqhc-resume/internal/resume"
)

func TestReadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
language: es
max-bullets: 5
exclude:
  blocks: [chw-3]
ai:
  enabled: true
  gemini:
    model: gemini-test
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FQHC_MAX_BULLETS", "2")
	t.Setenv("FQHC_DISMISSED_FILE", "/tmp/dismissed.json")

	v := viper.New()
	setDefaults(v)
	if err := readConfig(v, path); err != nil {
		t.Fatalf("read config: %v", err)
	}

	config, err := unmarshalConfig(v)
	if err != nil {
		t.Fatalf("unmarshal config: %v", err)
	}

	if config.Language != "es" {
		t.Fatalf("unexpected language %q", config.Language)
	}
	if config.MaxBullets != 2 {
		t.Fatalf("env must override file, got %d", config.MaxBullets)
	}
	if config.DismissedFile != "/tmp/dismissed.json" {
		t.Fatalf("unexpected dismissed file %q", config.DismissedFile)
	}
	if config.Exclude == nil || !slices.Equal(config.Exclude.Blocks, []string{"chw-3"}) {
		t.Fatalf("unexpected exclude: %+v", config.Exclude)
	}
	if config.AI == nil || !config.AI.Enabled || config.AI.Gemini.Model != "gemini-test" || config.AI.Gemini.MaxRetries != 3 {
		t.Fatalf("unexpected ai config: %+v", config.AI)
	}
	if config.Server == nil || config.Server.Addr == "" {
		t.Fatalf("expected default server addr")
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	v := viper.New()
	if err := readConfig(v, ""); err != nil {
		t.Fatalf("missing default config must be tolerated: %v", err)
	}

	v = viper.New()
	if err := readConfig(v, filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("explicit missing config must fail")
	}
}

func TestLoadAnswersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.yaml")
	data := `
chw_outreach: [chw_outreach_home, chw_outreach_community]
chw_caseload: chw_caseload_medium
chw_languages: {nested: value}
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write answers: %v", err)
	}

	answers, err := loadAnswersFile(path)
	if err != nil {
		t.Fatalf("load answers: %v", err)
	}
	if !slices.Equal(answers["chw_outreach"], recommend.Multi("chw_outreach_home", "chw_outreach_community")) {
		t.Fatalf("unexpected outreach answer: %v", answers["chw_outreach"])
	}
	if !slices.Equal(answers["chw_caseload"], recommend.Single("chw_caseload_medium")) {
		t.Fatalf("unexpected caseload answer: %v", answers["chw_caseload"])
	}
	if _, ok := answers["chw_languages"]; ok {
		t.Fatalf("wrong-shape answers must be dropped")
	}

	if got := recommend.Resolve(answers, "chw"); !slices.Equal(got, []string{"chw-8", "chw-1", "chw-3"}) {
		t.Fatalf("unexpected resolution: %v", got)
	}

	if _, err := loadAnswersFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestMergeAnswers(t *testing.T) {
	base := recommend.Answers{"a": recommend.Single("1"), "b": recommend.Single("2")}
	merged := mergeAnswers(base, recommend.Answers{"b": recommend.Multi("3", "4")})

	if !slices.Equal(merged["a"], recommend.Single("1")) || !slices.Equal(merged["b"], recommend.Multi("3", "4")) {
		t.Fatalf("unexpected merge: %v", merged)
	}
	if !slices.Equal(base["b"], recommend.Single("2")) {
		t.Fatalf("base must not change")
	}
}

func TestPrintResult(t *testing.T) {
	result := &resume.Result{
		ID:       uuid.New(),
		Role:     "chw",
		Language: content.English,
		Blocks:   []string{"chw-9"},
		Matches:  []recommend.Match{{BlockID: "chw-9", QuestionID: "chw_caseload", OptionID: "chw_caseload_small"}},
		Bullets:  []*content.Bullet{{ID: "chw-9", Text: "Managed a small caseload.", Language: content.English}},
		Summary:  &ai.Summary{Headline: "Community Health Worker"},
	}

	var text bytes.Buffer
	if err := printResult(&text, result, outputText); err != nil {
		t.Fatalf("print text: %v", err)
	}
	out := text.String()
	for _, want := range []string{"Community Health Worker\n", "- Managed a small caseload.\n", "[chw-9] from chw_caseload=chw_caseload_small"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	var encoded bytes.Buffer
	if err := printResult(&encoded, result, outputJSON); err != nil {
		t.Fatalf("print json: %v", err)
	}
	var decoded resume.Result
	if err := json.Unmarshal(encoded.Bytes(), &decoded); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if decoded.ID != result.ID || !slices.Equal(decoded.Blocks, result.Blocks) {
		t.Fatalf("unexpected decoded result: %+v", decoded)
	}

	var empty bytes.Buffer
	if err := printResult(&empty, &resume.Result{Role: "dentist"}, outputText); err != nil {
		t.Fatalf("print empty: %v", err)
	}
	if !strings.Contains(empty.String(), `No recommendations for role "dentist"`) {
		t.Fatalf("unexpected empty output: %q", empty.String())
	}
}

func TestAskQuestions(t *testing.T) {
	questions := catalog.Default().Questions("chw")[:3]

	// chw_outreach (multi): pick community, then home, then Done.
	// chw_programs (multi): Done immediately.
	// chw_caseload (single): pick the first option.
	picks := []int{1, 0, -1, -1, 0}
	var labels []string
	sel := func(label string, items []string) (int, string, error) {
		labels = append(labels, label)
		idx := picks[0]
		picks = picks[1:]
		if idx < 0 {
			idx = len(items) - 1
		}
		return idx, items[idx], nil
	}

	answers, err := askQuestions(questions, content.English, sel)
	if err != nil {
		t.Fatalf("ask questions: %v", err)
	}

	if !slices.Equal(answers["chw_outreach"], recommend.Multi("chw_outreach_community", "chw_outreach_home")) {
		t.Fatalf("unexpected outreach answer: %v", answers["chw_outreach"])
	}
	if _, ok := answers["chw_programs"]; ok {
		t.Fatalf("finished multi question without picks must stay unanswered")
	}
	if !slices.Equal(answers["chw_caseload"], recommend.Single(questions[2].Options[0].ID)) {
		t.Fatalf("unexpected caseload answer: %v", answers["chw_caseload"])
	}
	if !strings.HasSuffix(labels[1], "(1 selected)") {
		t.Fatalf("expected selection count in label, got %q", labels[1])
	}
}

func TestAskQuestionsAbort(t *testing.T) {
	abort := errors.New("^C")
	sel := func(string, []string) (int, string, error) { return 0, "", abort }

	if _, err := askQuestions(catalog.Default().Questions("chw"), content.Spanish, sel); !errors.Is(err, abort) {
		t.Fatalf("expected abort error, got %v", err)
	}
}

func TestDismissBlocks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dismissed.json")

	added, unknown, err := dismissBlocks(path, content.Default(), "too generic", []string{"chw-1", "nope", "chw-1"})
	if err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	if !slices.Equal(added, []string{"chw-1"}) || !slices.Equal(unknown, []string{"nope"}) {
		t.Fatalf("unexpected result: added %v unknown %v", added, unknown)
	}

	added, _, err = dismissBlocks(path, content.Default(), "", []string{"chw-1", "chw-2"})
	if err != nil {
		t.Fatalf("dismiss again: %v", err)
	}
	if !slices.Equal(added, []string{"chw-2"}) {
		t.Fatalf("expected only the new block, got %v", added)
	}

	dismissed, err := content.LoadDismissed(path)
	if err != nil {
		t.Fatalf("load dismissed: %v", err)
	}
	if !slices.Equal(dismissed.IDs(), []string{"chw-1", "chw-2"}) {
		t.Fatalf("unexpected dismissed ids: %v", dismissed.IDs())
	}
}

func TestValidateData(t *testing.T) {
	report := validateData(catalog.Default(), content.Default())
	if !report.ok() {
		t.Fatalf("default data must be consistent: %+v", report)
	}

	store, err := content.NewStore([]content.Block{{ID: "chw-1", Role: "chw", Text: catalog.Text{"en": "One"}}, {ID: "extra", Role: "chw", Text: catalog.Text{"en": "Extra", "es": "Extra"}}})
	if err != nil {
		t.Fatalf("build store: %v", err)
	}
	report = validateData(catalog.Default(), store)
	if report.ok() {
		t.Fatalf("expected problems")
	}
	if !slices.Equal(report.Untranslated, []string{"chw-1"}) || !slices.Equal(report.Unused, []string{"extra"}) {
		t.Fatalf("unexpected report: %+v", report)
	}
	if slices.Contains(report.Missing, "chw-1") || !slices.Contains(report.Missing, "chw-2") {
		t.Fatalf("unexpected missing: %v", report.Missing)
	}

	var out bytes.Buffer
	if err := report.print(&out); err != nil {
		t.Fatalf("print report: %v", err)
	}
	if !strings.Contains(out.String(), "missing spanish translation:\n  chw-1\n") {
		t.Fatalf("unexpected report output:\n%s", out.String())
	}
}

func TestPrintRolesAndQuestions(t *testing.T) {
	var roles bytes.Buffer
	if err := printRoles(&roles, catalog.Default()); err != nil {
		t.Fatalf("print roles: %v", err)
	}
	if !strings.HasPrefix(roles.String(), "chw\t") {
		t.Fatalf("unexpected roles output: %q", roles.String())
	}

	var questions bytes.Buffer
	if err := printQuestions(&questions, catalog.Default().Questions("chw"), content.Spanish); err != nil {
		t.Fatalf("print questions: %v", err)
	}
	if !strings.HasPrefix(questions.String(), "chw_outreach (multi)\n  ¿") {
		t.Fatalf("unexpected questions output: %q", questions.String())
	}
	if !strings.Contains(questions.String(), "    chw_outreach_home: Visitas domiciliarias\n") {
		t.Fatalf("expected localized option labels")
	}
}

func TestRecommendExampleUsesCatalogData(t *testing.T) {
	c := catalog.Default()

	for _, line := range strings.Split(recommendCmd.Example, "\n") {
		args := strings.Fields(line)
		var role string
		var answers []string
		for i := 0; i+1 < len(args); i++ {
			switch args[i] {
			case "--role", "-r":
				role = args[i+1]
			case "--answer", "-a":
				answers = append(answers, args[i+1])
			}
		}

		if !slices.Contains(c.Roles(), role) {
			t.Fatalf("example role %q is not in the catalog (%v): %s", role, c.Roles(), line)
		}
		for questionID, selection := range recommend.ParseAnswerFlags(answers) {
			q, ok := c.Question(questionID)
			if !ok || q.Role != role {
				t.Fatalf("example question %q does not belong to role %q", questionID, role)
			}
			for _, id := range selection {
				if _, ok := q.Option(id); !ok {
					t.Fatalf("example option %q is not in question %q", id, questionID)
				}
			}
		}
	}
}
