package folder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/kodo/internal/cli"
	"github.com/thenoetrevino/kodo/internal/models"
	"github.com/thenoetrevino/kodo/internal/testutil"
	clitest "github.com/thenoetrevino/kodo/internal/testutil/cli"
)

func ptr(i int) *int { return &i }

func seedFolders(t *testing.T, fake *testutil.FakeAPI) {
	t.Helper()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fake.SetFolders(
		[]*models.Folder{
			{ID: 1, Name: "work"},
			{ID: 2, Name: "meetings", ParentID: ptr(1)},
			{ID: 3, Name: "archive"},
		},
		[]*models.Note{
			{ID: 10, Title: "plan", FolderID: ptr(1), UpdatedAt: base},
			{ID: 11, Title: "standup", FolderID: ptr(2), UpdatedAt: base.Add(time.Hour)},
			{ID: 12, Title: "loose"},
		},
	)
}

func TestFolders_Human(t *testing.T) {
	fake, app := clitest.SetupCLITest(t, nil, models.DefaultColumns())
	seedFolders(t, fake)

	output, err := clitest.ExecuteCLICommand(t, app, FoldersCmd(), nil)
	require.NoError(t, err)

	assert.Contains(t, output, "archive")
	assert.Contains(t, output, "└── ")
	assert.Contains(t, output, "(1/2)")
	assert.Contains(t, output, "(unfiled) (1)")
}

func TestFolders_JSON(t *testing.T) {
	fake, app := clitest.SetupCLITest(t, nil, models.DefaultColumns())
	seedFolders(t, fake)

	output, err := clitest.ExecuteCLICommand(t, app, FoldersCmd(), []string{"--json"})
	require.NoError(t, err)

	data := testutil.ParseJSON(t, output)["data"].(map[string]any)
	roots := data["folders"].([]any)
	require.Len(t, roots, 2)

	work := roots[1].(map[string]any)
	assert.Equal(t, "work", work["name"])
	assert.Equal(t, float64(2), work["total"])
	require.Len(t, work["children"], 1)
	meetings := work["children"].([]any)[0].(map[string]any)
	assert.Equal(t, "work/meetings", meetings["path"])
	assert.Equal(t, float64(1), data["unfiled"])
}

func TestFolders_Quiet(t *testing.T) {
	fake, app := clitest.SetupCLITest(t, nil, models.DefaultColumns())
	seedFolders(t, fake)

	output, err := clitest.ExecuteCLICommand(t, app, FoldersCmd(), []string{"--quiet"})
	require.NoError(t, err)
	assert.Equal(t, "3\n1\n  2\n", output)
}

func TestFolders_Empty(t *testing.T) {
	_, app := clitest.SetupCLITest(t, nil, models.DefaultColumns())

	output, err := clitest.ExecuteCLICommand(t, app, FoldersCmd(), nil)
	require.NoError(t, err)
	assert.Contains(t, output, "No folders found")
}

// ============================================================================
// NOTES IN FOLDER
// ============================================================================

func TestFolders_NotesInFolder(t *testing.T) {
	fake, app := clitest.SetupCLITest(t, nil, models.DefaultColumns())
	seedFolders(t, fake)

	output, err := clitest.ExecuteCLICommand(t, app, FoldersCmd(), []string{"--folder", "1", "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, "10\n", output)

	output, err = clitest.ExecuteCLICommand(t, app, FoldersCmd(), []string{"--folder", "1", "--recursive", "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, "11\n10\n", output, "newest first")
}

func TestFolders_UnknownFolder(t *testing.T) {
	fake, app := clitest.SetupCLITest(t, nil, models.DefaultColumns())
	seedFolders(t, fake)

	output, err := clitest.ExecuteCLICommand(t, app, FoldersCmd(), []string{"--folder", "42", "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
	assert.Equal(t, "FOLDER_NOT_FOUND", testutil.ParseJSON(t, output)["error"].(map[string]any)["code"])
}

func TestFolders_InvalidFolderID(t *testing.T) {
	_, app := clitest.SetupCLITest(t, nil, models.DefaultColumns())

	_, err := clitest.ExecuteCLICommand(t, app, FoldersCmd(), []string{"--folder", "-1"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}

func TestFolders_ServerDown(t *testing.T) {
	fake, app := clitest.SetupCLITest(t, nil, models.DefaultColumns())
	fake.Close()

	_, err := clitest.ExecuteCLICommand(t, app, FoldersCmd(), []string{"--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitError, cli.ExitCode(err))
}
