package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Scoped resource listings filter on organization and branch
		{"agreements", "idx_agreements_org_branch", "organization_id, branch_office_id"},
		{"agreements", "idx_agreements_status", "status"},
		{"agreements", "idx_agreements_created_at", "created_at"},
		{"templates", "idx_templates_org_branch", "organization_id, branch_office_id"},
		{"vendors", "idx_vendors_org_branch", "organization_id, branch_office_id"},
		{"projects", "idx_projects_org_branch", "organization_id, branch_office_id"},

		// Membership lookups by user and by organization
		{"organization_members", "idx_org_members_organization_id", "organization_id"},
		{"organization_members", "idx_org_members_user_id", "user_id"},

		// Invite acceptance resolves by token
		{"branch_invites", "idx_branch_invites_token", "invite_token"},
		{"branch_invites", "idx_branch_invites_organization_id", "organization_id"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			fmt.Printf("Index %s already exists, skipping\n", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		fmt.Printf("Created index %s on %s(%s)\n", idx.name, idx.table, idx.columns)
	}

	return nil
}
