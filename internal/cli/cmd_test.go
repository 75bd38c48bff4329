package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/alexanderramin/timetabler/internal/repository"
	"github.com/alexanderramin/timetabler/internal/service"
	"github.com/alexanderramin/timetabler/internal/testutil"
	"github.com/alexanderramin/timetabler/internal/timetable"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodReply = "Sure! Here it is.\n\nStart,End,Subject,Faculty\n09:00,10:00,Mathematics,Dr. Rao\n10:00,11:00,Physics,Prof. Iyer\n\nLet me know if you need changes."

const noTableReply = "I cannot build a timetable for these constraints."

func testApp(t *testing.T) (*App, *testutil.StubLLMClient) {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	stub := testutil.NewStubLLMClient(goodReply)

	deptRepo := repository.NewSQLiteDepartmentRepo(database)
	genRepo := repository.NewSQLiteGenerationRepo(database)

	return &App{
		Departments: service.NewDepartmentService(deptRepo, uow),
		Generations: service.NewGenerationService(stub, genRepo, uow),
		Import:      service.NewImportService(uow),
	}, stub
}

// seedDepartment stores the default test department under name.
func seedDepartment(t *testing.T, app *App, name string) *domain.DepartmentConfig {
	t.Helper()
	d := testutil.NewTestDepartment(name)
	require.NoError(t, app.Departments.Create(context.Background(), d))
	return d
}

func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const departmentsYAML = `departments:
  - name: Philosophy
    start: "09:00"
    end: "13:00"
    lecture_minutes: 60
    faculty:
      - name: Dr. Sen
        subject: Ethics
  - name: Sociology
    start: "10:00"
    end: "15:00"
    lecture_minutes: 50
    break:
      start: "12:00"
      minutes: 30
    faculty:
      - name: Prof. Das
        subject: Theory
`

// --- department ---

func TestDepartmentAdd_WithFlags(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "department", "add",
		"--name", "Science",
		"--start", "09:00", "--end", "4:00 PM",
		"--lecture", "60",
		"--break-start", "12:00", "--break-minutes", "30",
		"--faculty", "Dr. Rao=Mathematics",
		"--faculty", "Prof. Iyer = Physics",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Created department Science (2 faculty)")

	d, err := app.Departments.Get(context.Background(), "science")
	require.NoError(t, err)
	assert.Equal(t, domain.MustParseTimeOfDay("16:00"), d.WorkEnd)
	require.NotNil(t, d.Break)
	assert.Equal(t, 30, d.Break.DurationMin)
	assert.Equal(t, []domain.FacultySubject{
		{Faculty: "Dr. Rao", Subject: "Mathematics"},
		{Faculty: "Prof. Iyer", Subject: "Physics"},
	}, d.Faculty)
}

func TestDepartmentAdd_MissingFlags(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "department", "add", "--name", "Science")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestDepartmentAdd_NoFlagsNonInteractive(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "department", "add")
	require.Error(t, err)
}

func TestDepartmentAdd_BreakFlagsTogether(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "department", "add",
		"--name", "Science", "--start", "09:00", "--end", "16:00", "--lecture", "60",
		"--break-start", "12:00",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--break-minutes")
}

func TestDepartmentAdd_InvalidFaculty(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "department", "add",
		"--name", "Science", "--start", "09:00", "--end", "16:00", "--lecture", "60",
		"--faculty", "Dr. Rao",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--faculty")
}

func TestDepartmentAdd_InvalidTimeFlag(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "department", "add", "--name", "Science", "--start", "25:99")
	require.Error(t, err)
}

func TestDepartmentAdd_Duplicate(t *testing.T) {
	app, _ := testApp(t)
	seedDepartment(t, app, "Science")

	_, err := executeCmd(t, app, "department", "add",
		"--name", "SCIENCE", "--start", "09:00", "--end", "16:00", "--lecture", "60",
		"--faculty", "Dr. Rao=Mathematics",
	)
	assert.ErrorIs(t, err, service.ErrDepartmentExists)
}

func TestDepartmentAdd_InteractiveFormAborted(t *testing.T) {
	app, _ := testApp(t)
	app.IsInteractive = func() bool { return true }
	forms := 0
	app.RunForm = func(*huh.Form) error {
		forms++
		return huh.ErrUserAborted
	}

	_, err := executeCmd(t, app, "department", "add")
	assert.ErrorIs(t, err, huh.ErrUserAborted)
	assert.Equal(t, 1, forms)
}

func TestDepartmentList(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "department", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No departments found.")

	seedDepartment(t, app, "Science")
	seedDepartment(t, app, "Commerce")

	out, err = executeCmd(t, app, "dept", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Science")
	assert.Contains(t, out, "Commerce")
}

func TestDepartmentShow(t *testing.T) {
	app, _ := testApp(t)
	seedDepartment(t, app, "Science")

	out, err := executeCmd(t, app, "department", "show", "science")
	require.NoError(t, err)
	assert.Contains(t, out, "Science")
	assert.Contains(t, out, "Dr. Rao")
	assert.Contains(t, out, "Mathematics")

	_, err = executeCmd(t, app, "department", "show", "Arts")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDepartmentRemove_Yes(t *testing.T) {
	app, _ := testApp(t)
	seedDepartment(t, app, "Science")

	out, err := executeCmd(t, app, "department", "remove", "Science", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed department Science")

	_, err = app.Departments.Get(context.Background(), "Science")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDepartmentRemove_RequiresYesWhenNonInteractive(t *testing.T) {
	app, _ := testApp(t)
	seedDepartment(t, app, "Science")

	_, err := executeCmd(t, app, "department", "remove", "Science")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	_, err = app.Departments.Get(context.Background(), "Science")
	assert.NoError(t, err)
}

func TestDepartmentRemove_InteractiveDeclined(t *testing.T) {
	app, _ := testApp(t)
	seedDepartment(t, app, "Science")
	app.IsInteractive = func() bool { return true }
	app.RunForm = func(*huh.Form) error { return nil }

	out, err := executeCmd(t, app, "department", "remove", "Science")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")

	_, err = app.Departments.Get(context.Background(), "Science")
	assert.NoError(t, err)
}

func TestDepartmentImport(t *testing.T) {
	app, _ := testApp(t)
	path := writeFile(t, "departments.yaml", departmentsYAML)

	out, err := executeCmd(t, app, "department", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 departments")
	assert.Contains(t, out, "Philosophy")

	depts, err := app.Departments.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, depts, 2)
}

func TestDepartmentImport_InvalidFileStoresNothing(t *testing.T) {
	app, _ := testApp(t)
	path := writeFile(t, "bad.yaml", `departments:
  - name: Philosophy
    start: "13:00"
    end: "09:00"
    lecture_minutes: 60
`)

	_, err := executeCmd(t, app, "department", "import", path)
	require.Error(t, err)

	depts, err := app.Departments.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, depts)
}

// --- generate ---

func TestGenerate_ByName(t *testing.T) {
	app, stub := testApp(t)
	seedDepartment(t, app, "Science")

	out, err := executeCmd(t, app, "generate", "science")
	require.NoError(t, err)
	assert.Contains(t, out, "SCIENCE TIMETABLE")
	assert.Contains(t, out, "Mathematics")
	assert.Contains(t, out, "Prof. Iyer")
	assert.Contains(t, out, "10:00")
	assert.NotContains(t, out, "timetables generated", "no summary for a single department")
	assert.Equal(t, 1, stub.Calls())

	gens, err := app.Generations.History(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, gens, 1)
	assert.True(t, gens[0].Result.OK())
}

func TestGenerate_FailureShowsRawAndSucceeds(t *testing.T) {
	app, stub := testApp(t)
	seedDepartment(t, app, "Science")
	stub.Default = testutil.StubReply{Text: noTableReply}

	out, err := executeCmd(t, app, "generate", "Science")
	require.NoError(t, err)
	assert.Contains(t, out, "Error:")
	assert.Contains(t, out, noTableReply)
}

func TestGenerate_All(t *testing.T) {
	app, stub := testApp(t)
	seedDepartment(t, app, "Science")
	seedDepartment(t, app, "Commerce")
	stub.On("Commerce department", testutil.StubReply{Text: noTableReply})

	out, err := executeCmd(t, app, "generate", "--all", "--parallel", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "SCIENCE TIMETABLE")
	assert.Contains(t, out, "COMMERCE TIMETABLE")
	assert.Contains(t, out, "1 of 2 timetables generated, 1 failed")
	assert.Equal(t, 2, stub.Calls())
}

func TestGenerate_AllWithoutDepartments(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "generate", "--all")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no departments")
}

func TestGenerate_FromFileDoesNotStoreDepartments(t *testing.T) {
	app, stub := testApp(t)
	path := writeFile(t, "departments.yaml", departmentsYAML)

	out, err := executeCmd(t, app, "generate", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "PHILOSOPHY TIMETABLE")
	assert.Contains(t, out, "SOCIOLOGY TIMETABLE")
	assert.Equal(t, 2, stub.Calls())

	depts, err := app.Departments.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, depts)

	gens, err := app.Generations.History(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, gens, 2)
	for _, g := range gens {
		assert.Empty(t, g.DepartmentID)
	}
}

func TestGenerate_RequiresTarget(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--all")
}

func TestGenerate_NamesWithAllRejected(t *testing.T) {
	app, _ := testApp(t)
	seedDepartment(t, app, "Science")

	_, err := executeCmd(t, app, "generate", "Science", "--all")
	assert.Error(t, err)
}

func TestGenerate_UnknownDepartment(t *testing.T) {
	app, stub := testApp(t)

	_, err := executeCmd(t, app, "generate", "Arts")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Zero(t, stub.Calls())
}

func TestGenerate_ModelNotConfigured(t *testing.T) {
	app, stub := testApp(t)
	seedDepartment(t, app, "Science")
	app.LLMErr = errors.New("GROQ_API_KEY is not set")

	_, err := executeCmd(t, app, "generate", "Science")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not configured")
	assert.Contains(t, err.Error(), "GROQ_API_KEY")
	assert.Zero(t, stub.Calls())
}

func TestGenerate_PromptOnlySkipsModel(t *testing.T) {
	app, stub := testApp(t)
	d := seedDepartment(t, app, "Science")
	app.LLMErr = errors.New("no key")

	out, err := executeCmd(t, app, "generate", "Science", "--prompt-only")
	require.NoError(t, err)
	assert.Contains(t, out, "SCIENCE PROMPT")
	assert.Contains(t, out, timetable.BuildPrompt(*d))
	assert.Zero(t, stub.Calls())
}

func TestGenerate_InspectOpensFailedResponses(t *testing.T) {
	app, stub := testApp(t)
	seedDepartment(t, app, "Science")
	seedDepartment(t, app, "Commerce")
	stub.On("Commerce department", testutil.StubReply{Text: noTableReply})

	var inspected []string
	app.IsInteractive = func() bool { return true }
	app.Inspect = func(title, raw string) error {
		inspected = append(inspected, title+"|"+raw)
		return nil
	}

	_, err := executeCmd(t, app, "generate", "Science", "Commerce", "--inspect")
	require.NoError(t, err)
	assert.Equal(t, []string{"Commerce raw response|" + noTableReply}, inspected)
}

func TestGenerate_InspectIgnoredWhenNonInteractive(t *testing.T) {
	app, stub := testApp(t)
	seedDepartment(t, app, "Science")
	stub.Default = testutil.StubReply{Text: noTableReply}
	app.Inspect = func(string, string) error {
		t.Fatal("inspector must not open without a terminal")
		return nil
	}

	_, err := executeCmd(t, app, "generate", "Science", "--inspect")
	assert.NoError(t, err)
}

// partialGenerations finishes the first department and fails to save the rest.
type partialGenerations struct {
	service.GenerationService
}

func (p partialGenerations) GenerateAll(ctx context.Context, cfgs []domain.DepartmentConfig, parallel int) ([]*domain.Generation, error) {
	gens := make([]*domain.Generation, len(cfgs))
	g, err := p.Generate(ctx, cfgs[0])
	if err != nil {
		return nil, err
	}
	gens[0] = g
	return gens, errors.New("saving generation: disk full")
}

func TestGenerate_SaveFailureStillShowsFinishedDepartments(t *testing.T) {
	app, _ := testApp(t)
	seedDepartment(t, app, "Science")
	seedDepartment(t, app, "Commerce")
	app.Generations = partialGenerations{GenerationService: app.Generations}

	out, err := executeCmd(t, app, "generate", "Science", "Commerce")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, out, "SCIENCE TIMETABLE")
	assert.Contains(t, out, "Mathematics")
	assert.NotContains(t, out, "COMMERCE TIMETABLE")
}

// --- history ---

func generateFor(t *testing.T, app *App, name string) *domain.Generation {
	t.Helper()
	d, err := app.Departments.Get(context.Background(), name)
	require.NoError(t, err)
	g, err := app.Generations.Generate(context.Background(), *d)
	require.NoError(t, err)
	return g
}

func TestHistory_Empty(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No generations yet.")
}

func TestHistory_FiltersByDepartment(t *testing.T) {
	app, _ := testApp(t)
	seedDepartment(t, app, "Science")
	seedDepartment(t, app, "Commerce")
	sci := generateFor(t, app, "Science")
	com := generateFor(t, app, "Commerce")

	out, err := executeCmd(t, app, "history")
	require.NoError(t, err)
	assert.Contains(t, out, sci.DisplayID())
	assert.Contains(t, out, com.DisplayID())

	out, err = executeCmd(t, app, "history", "commerce")
	require.NoError(t, err)
	assert.Contains(t, out, com.DisplayID())
	assert.NotContains(t, out, sci.DisplayID())
}

func TestHistory_Limit(t *testing.T) {
	app, _ := testApp(t)
	seedDepartment(t, app, "Science")
	for i := 0; i < 3; i++ {
		generateFor(t, app, "Science")
	}

	out, err := executeCmd(t, app, "history", "--limit", "1")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "Science"))
}

func TestHistoryShow(t *testing.T) {
	app, _ := testApp(t)
	seedDepartment(t, app, "Science")
	g := generateFor(t, app, "Science")

	out, err := executeCmd(t, app, "history", "show", g.DisplayID(), "--prompt", "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "SCIENCE TIMETABLE")
	assert.Contains(t, out, "Mathematics")
	assert.Contains(t, out, "Working hours: 09:00 to 16:00")
	assert.Contains(t, out, "Let me know if you need changes.")

	_, err = executeCmd(t, app, "history", "show", "ffffffff")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// --- export ---

func TestExport_Stdout(t *testing.T) {
	app, _ := testApp(t)
	seedDepartment(t, app, "Science")
	g := generateFor(t, app, "Science")

	out, err := executeCmd(t, app, "export", g.DisplayID())
	require.NoError(t, err)
	assert.Equal(t, "Start,End,Subject,Faculty\n09:00,10:00,Mathematics,Dr. Rao\n10:00,11:00,Physics,Prof. Iyer\n", out)
}

func TestExport_File(t *testing.T) {
	app, _ := testApp(t)
	seedDepartment(t, app, "Science")
	g := generateFor(t, app, "Science")
	path := filepath.Join(t.TempDir(), "science.csv")

	out, err := executeCmd(t, app, "export", g.ID, "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 2 rows")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rows, err := timetable.ParseBlock(string(data))
	require.NoError(t, err)
	assert.Equal(t, g.Result.Rows, rows)
}

func TestExport_FailedGeneration(t *testing.T) {
	app, stub := testApp(t)
	seedDepartment(t, app, "Science")
	stub.Default = testutil.StubReply{Text: noTableReply}
	g := generateFor(t, app, "Science")

	_, err := executeCmd(t, app, "export", g.DisplayID())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no timetable")
}
