package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPropertiesMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_properties_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no properties migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TYPE property_status AS ENUM",
		"CREATE TYPE property_type AS ENUM",
		"CREATE TYPE transaction_type AS ENUM",
		"CREATE TABLE IF NOT EXISTS properties",
		"CREATE TABLE IF NOT EXISTS property_images",
		"CREATE TABLE IF NOT EXISTS pricing_history",
		"CREATE TABLE IF NOT EXISTS property_views",
		"FOREIGN KEY (property_id) REFERENCES properties(id) ON DELETE CASCADE",
		"CHECK (price >= 0)",
		"CREATE INDEX IF NOT EXISTS properties_status_verified_idx",
		"DROP TABLE IF EXISTS properties",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}

	if strings.Contains(content, "FOREIGN KEY (owner_id)") {
		t.Errorf("properties.owner_id must not carry a foreign key; reads tolerate a missing owner row")
	}
}

func TestConversationsMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_conversations_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no conversations migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TYPE message_sender AS ENUM",
		"CREATE TABLE IF NOT EXISTS system_prompts",
		"CREATE TABLE IF NOT EXISTS conversations",
		"CREATE TABLE IF NOT EXISTS messages",
		"FOREIGN KEY (system_prompt_id) REFERENCES system_prompts(id) ON DELETE SET NULL",
		"FOREIGN KEY (conversation_id) REFERENCES conversations(id) ON DELETE CASCADE",
		"is_visible boolean NOT NULL DEFAULT true",
		"DROP TABLE IF EXISTS messages",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
