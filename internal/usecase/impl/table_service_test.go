package impl

import (
	"context"
	"testing"

	"corpgate/internal/domain/entity"
	domainerrors "corpgate/internal/domain/errors"
	"corpgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTableServiceForTest() (usecase.TableUsecase, *fakeFactory) {
	txManager, factory := newFakeEnv()
	svc := NewTableService(txManager, newDiscardLogger())

	return svc, factory
}

func regularUser() *entity.User {
	return &entity.User{ID: uuid.New(), Email: "user@example.com", Role: "user", Status: entity.StatusActive}
}

func adminUser() *entity.User {
	return &entity.User{ID: uuid.New(), Email: "admin@example.com", Role: "Admin", Status: entity.StatusActive}
}

func TestListRecords_UnknownTable(t *testing.T) {
	svc, _ := newTableServiceForTest()

	_, err := svc.ListRecords(context.Background(), regularUser(), "Secrets", 1, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTable))
}

func TestListRecords_OwnershipScoping(t *testing.T) {
	svc, factory := newTableServiceForTest()
	user := regularUser()

	_, err := svc.ListRecords(context.Background(), user, "Orders", 1, 10)
	require.NoError(t, err)
	require.NotNil(t, factory.tables.lastOwnerFilter, "non-admin listing of an ownership table is scoped")
	assert.Equal(t, user.ID, *factory.tables.lastOwnerFilter)

	_, err = svc.ListRecords(context.Background(), adminUser(), "Orders", 1, 10)
	require.NoError(t, err)
	assert.Nil(t, factory.tables.lastOwnerFilter, "admins see every row")

	_, err = svc.ListRecords(context.Background(), user, "Facilities", 1, 10)
	require.NoError(t, err)
	assert.Nil(t, factory.tables.lastOwnerFilter, "lookup tables are not scoped")
}

func TestCreateRecord_StampsOwnership(t *testing.T) {
	svc, factory := newTableServiceForTest()
	user := regularUser()

	row, err := svc.CreateRecord(context.Background(), user, "Issues", map[string]any{
		"issue_id":    999,
		"description": "printer on fire",
	})
	require.NoError(t, err)
	require.NotNil(t, row)

	inserted := factory.tables.inserted
	assert.Equal(t, user.ID, inserted["created_by"])
	assert.Contains(t, inserted, "created_at")
	assert.NotContains(t, inserted, "issue_id", "client cannot pick the primary key")
}

func TestCreateRecord_LookupTableNotStamped(t *testing.T) {
	svc, factory := newTableServiceForTest()

	_, err := svc.CreateRecord(context.Background(), adminUser(), "Facilities", map[string]any{"name": "North Clinic"})
	require.NoError(t, err)
	assert.NotContains(t, factory.tables.inserted, "created_by")
}

func TestCreateRecord_Empty(t *testing.T) {
	svc, _ := newTableServiceForTest()

	_, err := svc.CreateRecord(context.Background(), regularUser(), "Issues", map[string]any{})
	require.Error(t, err)
}

func TestUpdateRecordStatus(t *testing.T) {
	svc, factory := newTableServiceForTest()
	user := regularUser()
	factory.tables.owners["7"] = user.ID

	row, err := svc.UpdateRecordStatus(context.Background(), user, "Issues", "7", "Solved")
	require.NoError(t, err)
	assert.Equal(t, "Solved", row["status"])
	assert.Equal(t, user.ID.String(), row["solved_by"])

	row, err = svc.UpdateRecordStatus(context.Background(), user, "Orders", "7", "Delivered")
	require.NoError(t, err)
	assert.Equal(t, "Delivered", row["status"])

	_, err = svc.UpdateRecordStatus(context.Background(), user, "Facilities", "7", "Solved")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTable))

	_, err = svc.UpdateRecordStatus(context.Background(), user, "Issues", "404", "Solved")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestUpdateRecordStatus_KeepsHistory(t *testing.T) {
	svc, factory := newTableServiceForTest()
	user := regularUser()
	factory.tables.owners["7"] = user.ID
	factory.tables.owners["9"] = user.ID

	_, err := svc.UpdateRecordStatus(context.Background(), user, "Issues", "7", "Solved")
	require.NoError(t, err)

	row, err := svc.UpdateRecordStatus(context.Background(), user, "Issues", "7", "Open")
	require.NoError(t, err)
	assert.Equal(t, "Open", row["status"])
	assert.Equal(t, user.ID.String(), row["solved_by"], "reopening keeps the solver record")
	assert.Contains(t, row, "solved_at")

	_, err = svc.UpdateRecordStatus(context.Background(), user, "Orders", "9", "Delivered")
	require.NoError(t, err)

	row, err = svc.UpdateRecordStatus(context.Background(), user, "Orders", "9", "Pending")
	require.NoError(t, err)
	assert.Equal(t, "Pending", row["status"])
	assert.Contains(t, row, "delivered_date", "leaving Delivered keeps the delivery date")
}

func TestFormMetaAndPages(t *testing.T) {
	svc, factory := newTableServiceForTest()
	factory.tables.pages = []string{"issues", "orders"}

	columns, err := svc.FormMeta(context.Background(), "Orders")
	require.NoError(t, err)
	require.NotEmpty(t, columns)
	assert.Equal(t, "order_id", columns[0].Name)

	_, err = svc.FormMeta(context.Background(), "nope")
	require.Error(t, err)

	pages, err := svc.ListPages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"issues", "orders"}, pages)
}
