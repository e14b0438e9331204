package scope

import (
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/contractdesk/contract-management-api/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

// The scope filter queries the row store, so the exact predicates matter more
// than the rows that come back. These assert the SQL each case emits against
// the Postgres dialect.
func TestBranch_GeneratedSQL(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		pattern string
		args    []driver.Value
	}{
		{
			name:    "branch scope with concrete branch pins the column",
			params:  Params{OrganizationID: 1, Scope: ScopeBranch, BranchOfficeID: uint64Ptr(10)},
			pattern: `organization_id = \$1.*branch_office_id = \$2`,
			args:    []driver.Value{1, 10},
		},
		{
			name:    "branch scope without a branch requires a non-null column",
			params:  Params{OrganizationID: 1, Scope: ScopeBranch},
			pattern: `organization_id = \$1.*branch_office_id IS NOT NULL`,
			args:    []driver.Value{1},
		},
		{
			name:    "organization scope requires a null column",
			params:  Params{OrganizationID: 1, Scope: ScopeOrganization},
			pattern: `organization_id = \$1.*branch_office_id IS NULL`,
			args:    []driver.Value{1},
		},
		{
			name:    "default scope with a branch allows the branch or null",
			params:  Params{OrganizationID: 1, Scope: ScopeDefault, BranchOfficeID: uint64Ptr(10)},
			pattern: `organization_id = \$1.*branch_office_id = \$2 OR branch_office_id IS NULL`,
			args:    []driver.Value{1, 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)

			mock.ExpectQuery(tt.pattern).
				WithArgs(tt.args...).
				WillReturnRows(sqlmock.NewRows([]string{"id"}))

			var projects []models.Project
			err := db.Scopes(Branch(tt.params)).Find(&projects).Error
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
