package board

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/kodo/internal/cli"
	"github.com/thenoetrevino/kodo/internal/models"
	"github.com/thenoetrevino/kodo/internal/testutil"
	clitest "github.com/thenoetrevino/kodo/internal/testutil/cli"
)

func boardItems() []*models.Item {
	return []*models.Item{
		{ID: 1, Type: "TODO", Title: "cache results", Status: models.StatusTodo, Priority: models.PriorityHigh},
		{ID: 2, Type: "FIXME", Title: "flaky retry", Status: models.StatusTodo},
		{ID: 3, Type: "TODO", Title: "write docs", Status: models.StatusInProgress},
		{ID: 4, Type: "BUG", Title: "lost status", Status: "archived"},
	}
}

// ============================================================================
// BOARD
// ============================================================================

func TestBoard_JSON(t *testing.T) {
	fake, app := clitest.SetupCLITest(t, boardItems(), models.DefaultColumns())

	output, err := clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"--json"})
	require.NoError(t, err)

	result := testutil.ParseJSON(t, output)
	assert.Equal(t, true, result["success"])

	data := result["data"].(map[string]any)
	columns := data["columns"].([]any)
	require.Len(t, columns, 3)

	todo := columns[0].(map[string]any)
	assert.Equal(t, models.StatusTodo, todo["id"])
	assert.Len(t, todo["items"], 2)

	done := columns[2].(map[string]any)
	assert.Empty(t, done["items"], "empty columns are still listed")

	orphans := data["orphans"].([]any)
	require.Len(t, orphans, 1)
	assert.Equal(t, float64(4), orphans[0].(map[string]any)["id"])

	assert.Equal(t, 1, fake.Calls(testutil.RouteListItems))
}

func TestBoard_Quiet(t *testing.T) {
	_, app := clitest.SetupCLITest(t, boardItems(), models.DefaultColumns())

	output, err := clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"--quiet"})
	require.NoError(t, err)

	assert.Equal(t, "todo: 1 2\nin_progress: 3\ndone: \n", output)
}

func TestBoard_Human(t *testing.T) {
	_, app := clitest.SetupCLITest(t, boardItems(), models.DefaultColumns())

	output, err := clitest.ExecuteCLICommand(t, app, BoardCmd(), nil)
	require.NoError(t, err)

	assert.Contains(t, output, "IN PROGRESS")
	assert.Contains(t, output, "cache results")
	assert.Contains(t, output, "(empty)")
	assert.Contains(t, output, "1 item(s) on no column")
	assert.NotContains(t, output, "may be out of date")
}

func TestBoard_CachedSnapshot(t *testing.T) {
	fake, app := clitest.SetupCLITest(t, boardItems(), models.DefaultColumns())
	require.NoError(t, app.Repo().SaveSnapshot(context.Background(), boardItems(), models.DefaultColumns()))

	output, err := clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"--cached", "--json"})
	require.NoError(t, err)

	data := testutil.ParseJSON(t, output)["data"].(map[string]any)
	summary := data["summary"].(map[string]any)
	assert.Equal(t, true, summary["stale"])
	assert.Equal(t, 0, fake.Calls(testutil.RouteListItems), "cached board must not hit the server")
}

// Edge case: --cached with nothing saved yet fails instead of printing an empty board.
func TestBoard_CachedWithoutSnapshot(t *testing.T) {
	_, app := clitest.SetupCLITest(t, boardItems(), models.DefaultColumns())

	output, err := clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"--cached", "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitError, cli.ExitCode(err))

	result := testutil.ParseJSON(t, output)
	assert.Equal(t, false, result["success"])
	assert.Equal(t, "BOARD_FETCH_ERROR", result["error"].(map[string]any)["code"])
}

func TestBoard_ServerDownFallsBackToCache(t *testing.T) {
	fake, app := clitest.SetupCLITest(t, boardItems(), models.DefaultColumns())

	_, err := clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"--json"})
	require.NoError(t, err)

	fake.Close()

	output, err := clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"--quiet"})
	require.NoError(t, err)
	assert.Contains(t, output, "todo: 1 2")
}

func TestBoard_RolledBackMoveKeepsColumn(t *testing.T) {
	fake, app := clitest.SetupCLITest(t, boardItems(), models.DefaultColumns())
	require.NoError(t, app.BoardService.Refresh(context.Background()))

	fake.FailUpdates(http.StatusInternalServerError)
	result, err := app.BoardService.MoveTo(context.Background(), 1, models.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeRolledBack, result.Outcome)

	output, err := clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"--quiet"})
	require.NoError(t, err)
	assert.Contains(t, output, "todo: 1 2", "rolled back item returns to its column")
}

// ============================================================================
// HISTORY
// ============================================================================

func TestHistory_ListsMovesNewestFirst(t *testing.T) {
	fake, app := clitest.SetupCLITest(t, boardItems(), models.DefaultColumns())
	ctx := context.Background()
	require.NoError(t, app.BoardService.Refresh(ctx))

	_, err := app.BoardService.MoveTo(ctx, 1, models.StatusInProgress)
	require.NoError(t, err)
	fake.FailUpdates(http.StatusInternalServerError)
	_, err = app.BoardService.MoveTo(ctx, 2, models.StatusDone)
	require.NoError(t, err)

	output, err := clitest.ExecuteCLICommand(t, app, HistoryCmd(), []string{"--json"})
	require.NoError(t, err)

	moves := testutil.ParseJSON(t, output)["data"].([]any)
	require.Len(t, moves, 2)

	latest := moves[0].(map[string]any)
	assert.Equal(t, float64(2), latest["item_id"])
	assert.Equal(t, string(models.OutcomeRolledBack), latest["outcome"])
	assert.NotEmpty(t, latest["error"])

	first := moves[1].(map[string]any)
	assert.Equal(t, float64(1), first["item_id"])
	assert.Equal(t, string(models.OutcomeConfirmed), first["outcome"])
}

func TestHistory_FilterByItem(t *testing.T) {
	_, app := clitest.SetupCLITest(t, boardItems(), models.DefaultColumns())
	ctx := context.Background()
	require.NoError(t, app.BoardService.Refresh(ctx))

	_, err := app.BoardService.MoveTo(ctx, 1, models.StatusInProgress)
	require.NoError(t, err)
	_, err = app.BoardService.MoveTo(ctx, 3, models.StatusDone)
	require.NoError(t, err)

	output, err := clitest.ExecuteCLICommand(t, app, HistoryCmd(), []string{"--item", "3", "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(output, "\n"))
}

func TestHistory_Empty(t *testing.T) {
	_, app := clitest.SetupCLITest(t, boardItems(), models.DefaultColumns())

	output, err := clitest.ExecuteCLICommand(t, app, HistoryCmd(), nil)
	require.NoError(t, err)
	assert.Contains(t, output, "No moves recorded")

	output, err = clitest.ExecuteCLICommand(t, app, HistoryCmd(), []string{"--json"})
	require.NoError(t, err)
	assert.Empty(t, testutil.ParseJSON(t, output)["data"])
}

func TestHistory_InvalidLimit(t *testing.T) {
	_, app := clitest.SetupCLITest(t, boardItems(), models.DefaultColumns())

	_, err := clitest.ExecuteCLICommand(t, app, HistoryCmd(), []string{"--limit", "0"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}
